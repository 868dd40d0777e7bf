package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/techconf/scheduler/internal/model"
	"github.com/techconf/scheduler/internal/monitoring"
)

// SignUp enrolls the user in the event. Guards run in order: the event
// must exist, the user must not already be enrolled, the event must
// have an open seat, and a VIP-only event admits only current VIPs. On
// success the event's attendee list and the user's attending set are
// updated together and the VIP flag is recomputed.
func (s *Scheduler) SignUp(ctx context.Context, username, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := func() error {
		ev, ok := s.store.Events.Get(title)
		if !ok {
			return ErrEventNotFound
		}
		if s.store.Events.HasAttendee(title, username) {
			return ErrAlreadyEnrolled
		}
		if ev.IsFull() {
			return ErrEventFull
		}
		if ev.VIP && !s.store.Ledger.IsVIP(username) {
			return ErrNotVIP
		}

		s.store.Events.AddAttendee(title, username)
		s.store.Ledger.Enroll(username, title)
		log.Info().Str("user", username).Str("title", title).Msg("signed up")
		return nil
	}()
	monitoring.RecordOperation("sign_up", err)
	return err
}

// CancelSignUp withdraws the user from the event. The event's attendee
// list and the user's attending set are updated together and the VIP
// flag is recomputed, which may demote the user.
func (s *Scheduler) CancelSignUp(ctx context.Context, username, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := func() error {
		if !s.store.Events.Exists(title) {
			return ErrEventNotFound
		}
		if !s.store.Events.HasAttendee(title, username) {
			return ErrNotEnrolled
		}

		s.store.Events.RemoveAttendee(title, username)
		s.store.Ledger.Withdraw(username, title)
		log.Info().Str("user", username).Str("title", title).Msg("sign-up cancelled")
		return nil
	}()
	monitoring.RecordOperation("cancel_sign_up", err)
	return err
}

// ListAllEvents returns summaries of every scheduled event in creation
// order.
func (s *Scheduler) ListAllEvents(ctx context.Context) []model.EventSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.store.Events.All()
	out := make([]model.EventSummary, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Summarize())
	}
	return out
}

// ListUserEvents returns the user's schedule: hosting titles for a
// speaker, attended-event summaries for everyone else.
func (s *Scheduler) ListUserEvents(ctx context.Context, username string) (model.UserSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.store.Users.Exists(username) {
		return model.UserSchedule{}, ErrUserNotFound
	}

	schedule := model.UserSchedule{
		Username: username,
		Role:     s.store.Users.TypeOf(username),
	}
	if schedule.Role == model.UserSpeaker {
		schedule.Hosting = s.store.Ledger.Hosting(username)
		return schedule, nil
	}

	for _, title := range s.store.Ledger.Attending(username) {
		ev, ok := s.store.Events.Get(title)
		if !ok {
			// Attending sets are cleaned up when events are
			// cancelled, so a dangling title is a broken invariant.
			panic("service: attending title missing from catalog: " + title)
		}
		schedule.Attending = append(schedule.Attending, ev.Summarize())
	}
	return schedule, nil
}

// IsVIP reports the user's current VIP status. Speakers are never VIP.
func (s *Scheduler) IsVIP(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.store.Users.Exists(username) {
		return false, ErrUserNotFound
	}
	if s.store.Users.TypeOf(username) == model.UserSpeaker {
		return false, nil
	}
	return s.store.Ledger.IsVIP(username), nil
}
