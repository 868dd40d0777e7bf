package repository

import "github.com/samber/lo"

// EnrollmentLedger tracks, per identity, the events an attendee is
// enrolled in and the events a speaker hosts, plus the derived VIP
// flag. Entries are created lazily on first use and never deleted; an
// empty attending set is a valid record of past enrollment.
//
// VIP is a derived property, not a one-way switch: it is recomputed
// from the attending-set size after every enrollment mutation and can
// both promote and demote.
type EnrollmentLedger struct {
	attending map[string][]string
	hosting   map[string][]string
	vip       map[string]bool
}

// vipThreshold is the number of concurrent enrollments that makes an
// attendee a VIP.
const vipThreshold = 2

// NewEnrollmentLedger returns an empty ledger.
func NewEnrollmentLedger() *EnrollmentLedger {
	return &EnrollmentLedger{
		attending: make(map[string][]string),
		hosting:   make(map[string][]string),
		vip:       make(map[string]bool),
	}
}

// Attending returns the titles the user is enrolled in, in signup order.
func (l *EnrollmentLedger) Attending(username string) []string {
	out := make([]string, len(l.attending[username]))
	copy(out, l.attending[username])
	return out
}

// Hosting returns the titles the speaker hosts, in scheduling order.
func (l *EnrollmentLedger) Hosting(username string) []string {
	out := make([]string, len(l.hosting[username]))
	copy(out, l.hosting[username])
	return out
}

// IsVIP reports whether the user currently holds VIP status.
func (l *EnrollmentLedger) IsVIP(username string) bool {
	return l.vip[username]
}

// Enroll records that the user attends the event and recomputes the
// user's VIP flag.
func (l *EnrollmentLedger) Enroll(username, title string) {
	l.attending[username] = append(l.attending[username], title)
	l.recomputeVIP(username)
}

// Withdraw removes the event from the user's attending set and
// recomputes the VIP flag, which may demote the user.
func (l *EnrollmentLedger) Withdraw(username, title string) {
	l.attending[username] = lo.Without(l.attending[username], title)
	l.recomputeVIP(username)
}

// AddHosting records that the speaker hosts the event.
func (l *EnrollmentLedger) AddHosting(speaker, title string) {
	l.hosting[speaker] = append(l.hosting[speaker], title)
}

// RemoveHosting removes the event from the speaker's hosting set.
func (l *EnrollmentLedger) RemoveHosting(speaker, title string) {
	l.hosting[speaker] = lo.Without(l.hosting[speaker], title)
}

func (l *EnrollmentLedger) recomputeVIP(username string) {
	l.vip[username] = len(l.attending[username]) >= vipThreshold
}

// ExportAttending returns a copy of every attending set, keyed by user.
func (l *EnrollmentLedger) ExportAttending() map[string][]string {
	out := make(map[string][]string, len(l.attending))
	for user, titles := range l.attending {
		out[user] = append([]string(nil), titles...)
	}
	return out
}

// ExportHosting returns a copy of every hosting set, keyed by speaker.
func (l *EnrollmentLedger) ExportHosting() map[string][]string {
	out := make(map[string][]string, len(l.hosting))
	for speaker, titles := range l.hosting {
		out[speaker] = append([]string(nil), titles...)
	}
	return out
}
