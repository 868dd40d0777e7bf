// Package model defines the core domain types for the conference
// scheduling system.
package model

import "time"

// Room is a bookable conference room. Rooms are immutable once created;
// their capacity never changes.
type Room struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
}

// EventType classifies an event by the size of its speaker list.
type EventType string

const (
	EventParty EventType = "Party" // no speakers
	EventTalk  EventType = "Talk"  // exactly one speaker
	EventPanel EventType = "Panel" // two or more speakers
)

// Event is a scheduled conference event, keyed by its unique title.
type Event struct {
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	RoomID    string    `json:"room_id"`
	VIP       bool      `json:"vip"`
	Capacity  int       `json:"capacity"`
	Speakers  []string  `json:"speakers"`
	Attendees []string  `json:"attendees"`
}

// Type derives the event classification from the speaker list.
func (e *Event) Type() EventType {
	switch {
	case len(e.Speakers) == 0:
		return EventParty
	case len(e.Speakers) == 1:
		return EventTalk
	default:
		return EventPanel
	}
}

// IsFull reports whether the event has reached its capacity. The last
// seat still reads "not full" until it is actually taken.
func (e *Event) IsFull() bool {
	return len(e.Attendees) >= e.Capacity
}

// Remaining returns the number of open seats.
func (e *Event) Remaining() int {
	return e.Capacity - len(e.Attendees)
}

// UserType is the role of a registered identity.
type UserType string

const (
	UserAttendee  UserType = "Attendee"
	UserOrganizer UserType = "Organizer"
	UserSpeaker   UserType = "Speaker"
	UserInvalid   UserType = "Invalid"
)

// Capability is a permission carried by a user role.
type Capability string

const (
	CanAttend   Capability = "attend"
	CanHost     Capability = "host"
	CanOrganize Capability = "organize"
)

// Capabilities returns the permission set for a role. Organizers keep
// the attend capability: an organizer may sign up for events like any
// other attendee.
func (t UserType) Capabilities() []Capability {
	switch t {
	case UserAttendee:
		return []Capability{CanAttend}
	case UserOrganizer:
		return []Capability{CanAttend, CanOrganize}
	case UserSpeaker:
		return []Capability{CanHost}
	default:
		return nil
	}
}

// Can reports whether the role carries the given capability.
func (t UserType) Can(c Capability) bool {
	for _, have := range t.Capabilities() {
		if have == c {
			return true
		}
	}
	return false
}

// EventSummary is the read-only listing view of an event.
type EventSummary struct {
	Title         string    `json:"title"`
	Type          EventType `json:"type"`
	VIP           bool      `json:"vip"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	RoomID        string    `json:"room_id"`
	Speakers      []string  `json:"speakers"`
	AttendeeCount int       `json:"attendee_count"`
	Capacity      int       `json:"capacity"`
}

// Summarize builds the listing view of an event.
func (e *Event) Summarize() EventSummary {
	speakers := make([]string, len(e.Speakers))
	copy(speakers, e.Speakers)
	return EventSummary{
		Title:         e.Title,
		Type:          e.Type(),
		VIP:           e.VIP,
		Start:         e.Start,
		End:           e.End,
		RoomID:        e.RoomID,
		Speakers:      speakers,
		AttendeeCount: len(e.Attendees),
		Capacity:      e.Capacity,
	}
}

// UserSchedule is the per-user listing: speakers see the titles they
// host, everyone else sees summaries of the events they attend.
type UserSchedule struct {
	Username  string         `json:"username"`
	Role      UserType       `json:"role"`
	Hosting   []string       `json:"hosting,omitempty"`
	Attending []EventSummary `json:"attending,omitempty"`
}

// CreateRoomRequest is the payload for adding a room.
type CreateRoomRequest struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
}

// CreateEventRequest is the payload for scheduling an event. Dates are
// written as YYYYMMDD and times as 24-hour HH:MM:SS; they are validated
// by the scheduling pipeline, not at decode time.
type CreateEventRequest struct {
	VIP       bool     `json:"vip"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	RoomID    string   `json:"room_id"`
	Speakers  []string `json:"speakers,omitempty"`
	Title     string   `json:"title"`
	Capacity  int      `json:"capacity"`
}

// ChangeCapacityRequest is the payload for resizing an event.
type ChangeCapacityRequest struct {
	Capacity int    `json:"capacity"`
	Actor    string `json:"actor"`
	RoomID   string `json:"room_id"`
}

// CancelEventRequest carries the actor cancelling an event.
type CancelEventRequest struct {
	Actor string `json:"actor"`
}

// SignUpRequest is the payload for enrolling in (or withdrawing from)
// an event.
type SignUpRequest struct {
	Username string `json:"username"`
}

// CreateAccountRequest is the payload for registering an identity.
type CreateAccountRequest struct {
	Username string `json:"username"`
	Type     string `json:"type"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
