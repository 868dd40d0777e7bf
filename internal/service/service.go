// Package service implements the scheduling business logic: the
// ordered validation pipelines for event creation, cancellation and
// capacity changes, attendee enrollment, and the listing queries.
//
// The service is the single mutual-exclusion domain for the in-memory
// state. Every mutating operation holds the write lock for its whole
// check-then-act sequence; read-only queries share the read lock.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/techconf/scheduler/internal/model"
	"github.com/techconf/scheduler/internal/monitoring"
	"github.com/techconf/scheduler/internal/notify"
	"github.com/techconf/scheduler/internal/repository"
)

// Wire formats for event dates and times.
const (
	DateLayout = "20060102"
	TimeLayout = "15:04:05"
)

// Scheduler orchestrates all scheduling and enrollment operations over
// the shared store.
type Scheduler struct {
	mu        sync.RWMutex
	store     *repository.Store
	broadcast notify.Broadcaster
}

// NewScheduler constructs a Scheduler over the given store. The
// broadcaster receives cascade announcements; notification failures are
// logged and never propagated.
func NewScheduler(store *repository.Store, broadcast notify.Broadcaster) *Scheduler {
	return &Scheduler{store: store, broadcast: broadcast}
}

// CreateRoom registers a room with the given capacity.
func (s *Scheduler) CreateRoom(ctx context.Context, id string, capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := func() error {
		if s.store.Rooms.Exists(id) {
			return ErrDuplicateRoom
		}
		s.store.Rooms.Add(model.Room{ID: id, Capacity: capacity})
		return nil
	}()
	monitoring.RecordOperation("create_room", err)
	return err
}

// ListRooms returns all registered rooms.
func (s *Scheduler) ListRooms(ctx context.Context) []model.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Rooms.All()
}

// CreateAccount registers an identity with the given role.
func (s *Scheduler) CreateAccount(ctx context.Context, username, accountType string) error {
	var role model.UserType
	switch accountType {
	case "attendee":
		role = model.UserAttendee
	case "organizer":
		role = model.UserOrganizer
	case "speaker":
		role = model.UserSpeaker
	default:
		return ErrInvalidUserType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := func() error {
		if s.store.Users.Exists(username) {
			return ErrDuplicateUser
		}
		s.store.Users.Add(username, role)
		return nil
	}()
	monitoring.RecordOperation("create_account", err)
	return err
}

// UserType returns the role of the given identity, or UserInvalid for
// an unknown name.
func (s *Scheduler) UserType(ctx context.Context, username string) model.UserType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Users.TypeOf(username)
}

// parseInterval validates the four date/time fields in pipeline order
// and combines them into the event interval.
func parseInterval(startDate, endDate, startTime, endTime string) (start, end time.Time, err error) {
	sd, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return start, end, ErrBadStartDate
	}
	ed, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return start, end, ErrBadEndDate
	}
	st, err := time.Parse(TimeLayout, startTime)
	if err != nil {
		return start, end, ErrBadStartTime
	}
	et, err := time.Parse(TimeLayout, endTime)
	if err != nil {
		return start, end, ErrBadEndTime
	}

	start = time.Date(sd.Year(), sd.Month(), sd.Day(), st.Hour(), st.Minute(), st.Second(), 0, time.UTC)
	end = time.Date(ed.Year(), ed.Month(), ed.Day(), et.Hour(), et.Minute(), et.Second(), 0, time.UTC)
	if !end.After(start) {
		return start, end, ErrInvalidInterval
	}
	return start, end, nil
}
