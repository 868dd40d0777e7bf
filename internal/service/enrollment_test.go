package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techconf/scheduler/internal/model"
)

func TestSignUp_GuardOrder(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	req := talkReq("T1")
	req.Capacity = 1
	require.NoError(t, s.CreateEvent(ctx, req))

	assert.ErrorIs(t, s.SignUp(ctx, "alice", "ghost"), ErrEventNotFound)

	require.NoError(t, s.SignUp(ctx, "alice", "T1"))
	assert.ErrorIs(t, s.SignUp(ctx, "alice", "T1"), ErrAlreadyEnrolled,
		"already-enrolled is reported even when the event is also full")
	assert.ErrorIs(t, s.SignUp(ctx, "bob", "T1"), ErrEventFull)

	assert.Equal(t, 1, s.ListAllEvents(ctx)[0].AttendeeCount, "double signup adds one seat, not two")
}

func TestSignUp_FullBoundary(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	req := talkReq("T1")
	req.Capacity = 2
	require.NoError(t, s.CreateEvent(ctx, req))

	require.NoError(t, s.SignUp(ctx, "alice", "T1"))
	require.NoError(t, s.SignUp(ctx, "bob", "T1"), "last open seat is still joinable")
	assert.ErrorIs(t, s.SignUp(ctx, "olivia", "T1"), ErrEventFull)
}

func TestSignUp_VIPGating(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEvent(ctx, talkReq("T1")))

	open2 := talkReq("T2")
	open2.StartTime = "12:00:00"
	open2.EndTime = "13:00:00"
	require.NoError(t, s.CreateEvent(ctx, open2))

	exclusive := talkReq("gala")
	exclusive.VIP = true
	exclusive.StartTime = "14:00:00"
	exclusive.EndTime = "15:00:00"
	require.NoError(t, s.CreateEvent(ctx, exclusive))

	assert.ErrorIs(t, s.SignUp(ctx, "alice", "gala"), ErrNotVIP)

	require.NoError(t, s.SignUp(ctx, "alice", "T1"))
	require.NoError(t, s.SignUp(ctx, "alice", "T2"))

	vip, err := s.IsVIP(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, vip)
	require.NoError(t, s.SignUp(ctx, "alice", "gala"))

	// Cancelling down below two events demotes, closing the VIP door
	// again for future signups.
	require.NoError(t, s.CancelSignUp(ctx, "alice", "T1"))
	require.NoError(t, s.CancelSignUp(ctx, "alice", "T2"))
	vip, err = s.IsVIP(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, vip)
}

func TestCancelSignUp_GuardOrder(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEvent(ctx, talkReq("T1")))

	assert.ErrorIs(t, s.CancelSignUp(ctx, "alice", "ghost"), ErrEventNotFound)
	assert.ErrorIs(t, s.CancelSignUp(ctx, "alice", "T1"), ErrNotEnrolled)

	require.NoError(t, s.SignUp(ctx, "alice", "T1"))
	require.NoError(t, s.CancelSignUp(ctx, "alice", "T1"))
	assert.ErrorIs(t, s.CancelSignUp(ctx, "alice", "T1"), ErrNotEnrolled)
}

// The end-to-end walkthrough: room, conflicting schedules, then the
// signup/cancel round trip.
func TestSchedulingScenario(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	require.NoError(t, s.CreateRoom(ctx, "201", 5))

	first := talkReq("T1")
	first.RoomID = "201"
	require.NoError(t, s.CreateEvent(ctx, first))

	second := talkReq("T2")
	second.RoomID = "201"
	second.StartTime = "10:30:00"
	second.EndTime = "11:30:00"
	second.Speakers = []string{"sp2"}
	assert.ErrorIs(t, s.CreateEvent(ctx, second), ErrRoomConflict)

	assert.NoError(t, s.SignUp(ctx, "alice", "T1"))
	assert.ErrorIs(t, s.SignUp(ctx, "alice", "T1"), ErrAlreadyEnrolled)
	assert.NoError(t, s.CancelSignUp(ctx, "alice", "T1"))
	assert.ErrorIs(t, s.CancelSignUp(ctx, "alice", "T1"), ErrNotEnrolled)
}

func TestOrganizerCanAttend(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEvent(ctx, talkReq("T1")))
	require.NoError(t, s.SignUp(ctx, "olivia", "T1"))

	sched, err := s.ListUserEvents(ctx, "olivia")
	require.NoError(t, err)
	require.Len(t, sched.Attending, 1)
	assert.Equal(t, "T1", sched.Attending[0].Title)
	assert.Equal(t, model.UserOrganizer, sched.Role)
}

func TestListUserEvents(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	require.NoError(t, s.CreateEvent(ctx, talkReq("T1")))
	require.NoError(t, s.SignUp(ctx, "alice", "T1"))

	_, err := s.ListUserEvents(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	attendee, err := s.ListUserEvents(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.UserAttendee, attendee.Role)
	require.Len(t, attendee.Attending, 1)
	assert.Equal(t, "T1", attendee.Attending[0].Title)
	assert.Empty(t, attendee.Hosting)

	speaker, err := s.ListUserEvents(ctx, "sp1")
	require.NoError(t, err)
	assert.Equal(t, model.UserSpeaker, speaker.Role)
	assert.Equal(t, []string{"T1"}, speaker.Hosting)
	assert.Empty(t, speaker.Attending)
}

func TestIsVIP_SpeakersNever(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	_, err := s.IsVIP(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	vip, err := s.IsVIP(ctx, "sp1")
	require.NoError(t, err)
	assert.False(t, vip)
}

func TestCreateAccount(t *testing.T) {
	s, _ := newTestScheduler(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.CreateAccount(ctx, "x", "superuser"), ErrInvalidUserType)
	assert.ErrorIs(t, s.CreateAccount(ctx, "alice", "attendee"), ErrDuplicateUser)

	require.NoError(t, s.CreateAccount(ctx, "carol", "organizer"))
	assert.Equal(t, model.UserOrganizer, s.UserType(ctx, "carol"))
	assert.Equal(t, model.UserInvalid, s.UserType(ctx, "nobody"))
}
