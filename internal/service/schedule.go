package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/techconf/scheduler/internal/model"
	"github.com/techconf/scheduler/internal/monitoring"
)

// CreateEvent runs the full scheduling pipeline for an event with
// speakers. The guards run in a fixed order and short-circuit on the
// first failure, so a request with several problems always reports the
// same one.
func (s *Scheduler) CreateEvent(ctx context.Context, req model.CreateEventRequest) error {
	err := s.schedule(ctx, req, true)
	monitoring.RecordOperation("create_event", err)
	return err
}

// CreateParty runs the scheduling pipeline for a speakerless event. The
// speaker existence and availability guards are skipped; everything
// else is identical to CreateEvent.
func (s *Scheduler) CreateParty(ctx context.Context, req model.CreateEventRequest) error {
	req.Speakers = nil
	err := s.schedule(ctx, req, false)
	monitoring.RecordOperation("create_party", err)
	return err
}

func (s *Scheduler) schedule(ctx context.Context, req model.CreateEventRequest, withSpeakers bool) error {
	start, end, err := parseInterval(req.StartDate, req.EndDate, req.StartTime, req.EndTime)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Rooms.Exists(req.RoomID) {
		return ErrRoomNotFound
	}
	if !s.store.Events.IsRoomFreeAt(req.RoomID, start, end) {
		return ErrRoomConflict
	}

	if withSpeakers {
		if len(req.Speakers) == 0 {
			return ErrSpeakerNotFound
		}
		for _, speaker := range req.Speakers {
			if !s.store.Users.Exists(speaker) || s.store.Users.TypeOf(speaker) != model.UserSpeaker {
				return ErrSpeakerNotFound
			}
		}
		for _, speaker := range req.Speakers {
			if !s.store.Events.IsSpeakerFreeAt(speaker, start, end) {
				return ErrSpeakerConflict
			}
		}
	}

	if !s.store.Events.TitleIsUnique(req.Title) {
		return ErrDuplicateTitle
	}
	if req.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	if req.Capacity > s.store.Rooms.CapacityOf(req.RoomID) {
		return ErrCapacityExceedsRoom
	}

	ev := &model.Event{
		Title:    req.Title,
		Start:    start,
		End:      end,
		RoomID:   req.RoomID,
		VIP:      req.VIP,
		Capacity: req.Capacity,
		Speakers: append([]string(nil), req.Speakers...),
	}
	s.store.Events.Add(ev)
	for _, speaker := range req.Speakers {
		s.store.Ledger.AddHosting(speaker, req.Title)
	}
	monitoring.SetEventCount(s.store.Events.Len())

	log.Info().
		Str("title", req.Title).
		Str("room", req.RoomID).
		Str("type", string(ev.Type())).
		Bool("vip", ev.VIP).
		Msg("event scheduled")
	return nil
}

// CancelEvent removes the event, cleans up every participant's ledger
// entry, and sends exactly one cancellation announcement addressed to
// the union of current attendees and speakers. The only failure mode is
// a missing event.
func (s *Scheduler) CancelEvent(ctx context.Context, title, actor string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := func() error {
		ev, ok := s.store.Events.Get(title)
		if !ok {
			return ErrEventNotFound
		}

		message := fmt.Sprintf(
			"ANNOUNCEMENT: One of the events you are participating in: %s has been cancelled!", title)
		s.announce(ctx, ev, message)

		for _, attendee := range ev.Attendees {
			s.store.Ledger.Withdraw(attendee, title)
		}
		for _, speaker := range ev.Speakers {
			s.store.Ledger.RemoveHosting(speaker, title)
		}
		s.store.Events.Delete(title)
		monitoring.SetEventCount(s.store.Events.Len())

		log.Info().Str("title", title).Str("actor", actor).Msg("event cancelled")
		return nil
	}()
	monitoring.RecordOperation("cancel_event", err)
	return err
}

// ChangeCapacity resizes an event after announcing the change to all
// participants. The room capacity bound is checked against the caller's
// roomId; a nonexistent room reads as capacity 0 and therefore fails
// the bound, which also covers the bad-room case.
func (s *Scheduler) ChangeCapacity(ctx context.Context, title string, capacity int, actor, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := func() error {
		ev, ok := s.store.Events.Get(title)
		if !ok {
			return ErrEventNotFound
		}
		if capacity > s.store.Rooms.CapacityOf(roomID) {
			return ErrCapacityExceedsRoom
		}
		if capacity < s.store.Events.AttendeeCount(title) {
			return ErrCapacityBelowAttendance
		}

		message := fmt.Sprintf(
			"ANNOUNCEMENT: One of the events you are participating in: %s has been updated to allow %d attendee(s)!",
			title, capacity)
		s.announce(ctx, ev, message)

		s.store.Events.SetCapacity(title, capacity)
		log.Info().Str("title", title).Int("capacity", capacity).Str("actor", actor).Msg("event capacity changed")
		return nil
	}()
	monitoring.RecordOperation("change_capacity", err)
	return err
}

// announce sends one best-effort broadcast to the union of the event's
// attendees and speakers.
func (s *Scheduler) announce(ctx context.Context, ev *model.Event, message string) {
	recipients := lo.Union(ev.Attendees, ev.Speakers)
	if err := s.broadcast.Broadcast(ctx, recipients, message); err != nil {
		log.Warn().Err(err).Str("title", ev.Title).Msg("announcement delivery failed")
	}
	monitoring.RecordNotification()
}
