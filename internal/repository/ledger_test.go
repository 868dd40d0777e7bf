package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnrollmentLedger_VIPPromotionAndDemotion(t *testing.T) {
	l := NewEnrollmentLedger()

	assert.False(t, l.IsVIP("alice"), "unknown users are not VIP")

	l.Enroll("alice", "T1")
	assert.False(t, l.IsVIP("alice"))

	l.Enroll("alice", "T2")
	assert.True(t, l.IsVIP("alice"), "two enrollments promote")

	l.Withdraw("alice", "T1")
	assert.False(t, l.IsVIP("alice"), "dropping below two demotes")

	assert.Equal(t, []string{"T2"}, l.Attending("alice"))
}

func TestEnrollmentLedger_Hosting(t *testing.T) {
	l := NewEnrollmentLedger()

	l.AddHosting("sp1", "T1")
	l.AddHosting("sp1", "T2")
	assert.Equal(t, []string{"T1", "T2"}, l.Hosting("sp1"))

	l.RemoveHosting("sp1", "T1")
	assert.Equal(t, []string{"T2"}, l.Hosting("sp1"))

	assert.False(t, l.IsVIP("sp1"), "hosting never grants VIP")
}

func TestEnrollmentLedger_Export(t *testing.T) {
	l := NewEnrollmentLedger()
	l.Enroll("alice", "T1")
	l.AddHosting("sp1", "T1")

	attending := l.ExportAttending()
	attending["alice"][0] = "mutated"
	assert.Equal(t, []string{"T1"}, l.Attending("alice"), "export returns copies")

	hosting := l.ExportHosting()
	assert.Equal(t, map[string][]string{"sp1": {"T1"}}, hosting)
}
