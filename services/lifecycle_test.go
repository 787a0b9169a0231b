package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationTransitions(t *testing.T) {
	tests := []struct {
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{ReservationPending, ReservationConfirmed, true},
		{ReservationPending, ReservationCancelled, true},
		{ReservationPending, ReservationCompleted, false},
		{ReservationPending, ReservationPending, false},

		{ReservationConfirmed, ReservationCancelled, true},
		{ReservationConfirmed, ReservationCompleted, true},
		{ReservationConfirmed, ReservationPending, false},

		{ReservationCancelled, ReservationPending, false},
		{ReservationCancelled, ReservationConfirmed, false},
		{ReservationCancelled, ReservationCompleted, false},

		{ReservationCompleted, ReservationPending, false},
		{ReservationCompleted, ReservationConfirmed, false},
		{ReservationCompleted, ReservationCancelled, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestReservationStatusTerminal(t *testing.T) {
	assert.False(t, ReservationPending.IsTerminal())
	assert.False(t, ReservationConfirmed.IsTerminal())
	assert.True(t, ReservationCancelled.IsTerminal())
	assert.True(t, ReservationCompleted.IsTerminal())
}

func TestReservationStatusBlocking(t *testing.T) {
	assert.True(t, ReservationPending.Blocking())
	assert.True(t, ReservationConfirmed.Blocking())
	assert.False(t, ReservationCancelled.Blocking())
	assert.False(t, ReservationCompleted.Blocking())
}

func TestParseReservationStatus(t *testing.T) {
	st, err := ParseReservationStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, ReservationConfirmed, st)

	_, err = ParseReservationStatus("shipped")
	assert.Error(t, err)

	_, err = ParseReservationStatus("")
	assert.Error(t, err)
}

func TestContactStatusAndPriority(t *testing.T) {
	for _, s := range []ContactStatus{ContactNew, ContactRead, ContactReplied, ContactArchived} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, ContactStatus("pending").IsValid())

	for _, p := range []ContactPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		assert.True(t, p.IsValid(), p)
	}
	assert.False(t, ContactPriority("critical").IsValid())
}

func TestReviewStatus(t *testing.T) {
	for _, s := range []ReviewStatus{ReviewPending, ReviewApproved, ReviewRejected} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, ReviewStatus("deleted").IsValid())
}
