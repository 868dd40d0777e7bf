package repository

import (
	"time"

	"github.com/samber/lo"

	"github.com/techconf/scheduler/internal/model"
)

// EventCatalog is the catalog of scheduled events, indexed by unique
// title, with a secondary index bucketed by derived event type.
type EventCatalog struct {
	events  map[string]*model.Event
	order   []string // creation order, for stable listings
	buckets map[model.EventType][]string
}

// NewEventCatalog returns an empty catalog.
func NewEventCatalog() *EventCatalog {
	return &EventCatalog{
		events:  make(map[string]*model.Event),
		buckets: make(map[model.EventType][]string),
	}
}

// Overlaps reports whether two half-open [start, end) intervals
// intersect. Touching endpoints do not overlap.
func Overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// TitleIsUnique reports whether no event with the given title exists.
func (c *EventCatalog) TitleIsUnique(title string) bool {
	_, ok := c.events[title]
	return !ok
}

// Exists reports whether an event with the given title is scheduled.
func (c *EventCatalog) Exists(title string) bool {
	_, ok := c.events[title]
	return ok
}

// Get returns the event with the given title.
func (c *EventCatalog) Get(title string) (*model.Event, bool) {
	ev, ok := c.events[title]
	return ev, ok
}

// mustGet returns the event with the given title. All public operations
// check Exists before touching an event, so a miss here is a broken
// invariant, not a user-facing condition.
func (c *EventCatalog) mustGet(title string) *model.Event {
	ev, ok := c.events[title]
	if !ok {
		panic("repository: no event with title " + title)
	}
	return ev
}

// Add inserts an event into the catalog and into the type bucket
// matching its derived classification.
func (c *EventCatalog) Add(ev *model.Event) {
	if _, ok := c.events[ev.Title]; ok {
		panic("repository: duplicate event title " + ev.Title)
	}
	c.events[ev.Title] = ev
	c.order = append(c.order, ev.Title)
	t := ev.Type()
	c.buckets[t] = append(c.buckets[t], ev.Title)
}

// Delete removes an event from the catalog and from its type bucket.
func (c *EventCatalog) Delete(title string) {
	ev := c.mustGet(title)
	t := ev.Type()
	c.buckets[t] = lo.Without(c.buckets[t], title)
	c.order = lo.Without(c.order, title)
	delete(c.events, title)
}

// SetCapacity mutates an event's capacity in place. Bucket membership
// is unaffected: the type depends only on the speaker list.
func (c *EventCatalog) SetCapacity(title string, capacity int) {
	c.mustGet(title).Capacity = capacity
}

// IsFull reports whether the event has reached its capacity.
func (c *EventCatalog) IsFull(title string) bool {
	return c.mustGet(title).IsFull()
}

// AttendeeCount returns the number of attendees enrolled in the event.
func (c *EventCatalog) AttendeeCount(title string) int {
	return len(c.mustGet(title).Attendees)
}

// HasAttendee reports whether the user is on the event's attendee list.
func (c *EventCatalog) HasAttendee(title, username string) bool {
	return lo.Contains(c.mustGet(title).Attendees, username)
}

// AddAttendee appends the user to the event's attendee list.
func (c *EventCatalog) AddAttendee(title, username string) {
	ev := c.mustGet(title)
	ev.Attendees = append(ev.Attendees, username)
}

// RemoveAttendee drops the user from the event's attendee list.
func (c *EventCatalog) RemoveAttendee(title, username string) {
	ev := c.mustGet(title)
	ev.Attendees = lo.Without(ev.Attendees, username)
}

// IsRoomFreeAt reports whether no event scheduled in the given room has
// an interval overlapping [start, end).
func (c *EventCatalog) IsRoomFreeAt(roomID string, start, end time.Time) bool {
	for _, title := range c.order {
		ev := c.events[title]
		if ev.RoomID == roomID && Overlaps(ev.Start, ev.End, start, end) {
			return false
		}
	}
	return true
}

// IsSpeakerFreeAt reports whether no event listing the given speaker
// has an interval overlapping [start, end).
func (c *EventCatalog) IsSpeakerFreeAt(speaker string, start, end time.Time) bool {
	for _, title := range c.order {
		ev := c.events[title]
		if lo.Contains(ev.Speakers, speaker) && Overlaps(ev.Start, ev.End, start, end) {
			return false
		}
	}
	return true
}

// Titles returns all event titles in creation order.
func (c *EventCatalog) Titles() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// TitlesByType returns the titles in the given type bucket, in creation
// order.
func (c *EventCatalog) TitlesByType(t model.EventType) []string {
	out := make([]string, len(c.buckets[t]))
	copy(out, c.buckets[t])
	return out
}

// Len returns the number of scheduled events.
func (c *EventCatalog) Len() int {
	return len(c.events)
}

// All returns the events in creation order. The returned pointers are
// the live catalog entries; callers must not retain them past the
// guarding lock.
func (c *EventCatalog) All() []*model.Event {
	out := make([]*model.Event, 0, len(c.order))
	for _, title := range c.order {
		out = append(out, c.events[title])
	}
	return out
}
