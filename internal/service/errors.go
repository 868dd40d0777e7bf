package service

import "errors"

// Validation errors: the request was rejected before any state changed.
var (
	ErrBadStartDate = errors.New("start date is not a valid date in the form YYYYMMDD")
	ErrBadEndDate   = errors.New("end date is not a valid date in the form YYYYMMDD")
	ErrBadStartTime = errors.New("start time is not a valid 24-hour time in the form HH:MM:SS")
	ErrBadEndTime   = errors.New("end time is not a valid 24-hour time in the form HH:MM:SS")

	ErrInvalidInterval = errors.New("end time must be after the start time")

	ErrRoomNotFound = errors.New("room does not exist")
	ErrRoomConflict = errors.New("room is already booked at the given time")

	ErrSpeakerNotFound = errors.New("one or more speakers do not exist or are not speaker accounts")
	ErrSpeakerConflict = errors.New("one or more speakers are already booked for another event at the given time")

	ErrDuplicateTitle = errors.New("event title has already been taken")

	ErrInvalidCapacity         = errors.New("capacity must be a positive integer")
	ErrCapacityExceedsRoom     = errors.New("capacity exceeds the room capacity")
	ErrCapacityBelowAttendance = errors.New("attendees already signed up exceed the new capacity")
)

// Not-found errors.
var (
	ErrEventNotFound = errors.New("event does not exist")
	ErrUserNotFound  = errors.New("user does not exist")
)

// State errors: the request conflicted with current state.
var (
	ErrDuplicateRoom   = errors.New("room already exists")
	ErrDuplicateUser   = errors.New("username is already taken")
	ErrAlreadyEnrolled = errors.New("already signed up for this event")
	ErrEventFull       = errors.New("event is at full capacity")
	ErrNotVIP          = errors.New("event is open to VIP attendees only")
	ErrNotEnrolled     = errors.New("not signed up for this event")
)

// ErrInvalidUserType rejects account creation with an unknown role.
var ErrInvalidUserType = errors.New("account type must be attendee, organizer or speaker")
