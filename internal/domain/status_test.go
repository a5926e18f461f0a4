package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]InvoiceStatus]bool{
		{StatusDraft, StatusSent}:    true,
		{StatusSent, StatusPaid}:     true,
		{StatusDraft, StatusOverdue}: true,
		{StatusSent, StatusOverdue}:  true,
	}

	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			got := CanTransition(from, to)
			want := allowed[[2]InvoiceStatus{from, to}]
			assert.Equal(t, want, got, "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_NothingLeavesPaid(t *testing.T) {
	for _, to := range AllStatuses {
		assert.False(t, CanTransition(StatusPaid, to), "paid -> %s must be rejected", to)
	}
}

func TestTransition(t *testing.T) {
	inv := &Invoice{Status: StatusDraft}
	require.NoError(t, inv.Transition(StatusSent))
	assert.Equal(t, StatusSent, inv.Status)

	require.NoError(t, inv.Transition(StatusPaid))
	assert.Equal(t, StatusPaid, inv.Status)
}

func TestTransition_Rejected(t *testing.T) {
	inv := &Invoice{Status: StatusDraft}

	err := inv.Transition(StatusPaid)
	var transitionErr *TransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, StatusDraft, transitionErr.From)
	assert.Equal(t, StatusPaid, transitionErr.To)
	assert.Equal(t, StatusDraft, inv.Status, "rejected transition must not change state")
}

func TestTransition_SameStatusRejected(t *testing.T) {
	inv := &Invoice{Status: StatusSent}
	err := inv.Transition(StatusSent)
	assert.ErrorIs(t, err, ErrTransition)
	assert.Equal(t, StatusSent, inv.Status)
}

func TestTransition_UnknownStatus(t *testing.T) {
	inv := &Invoice{Status: StatusDraft}
	err := inv.Transition(InvoiceStatus("archived"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsOverdue(yesterday, StatusSent, today))
	assert.True(t, IsOverdue(yesterday, StatusDraft, today))
	assert.False(t, IsOverdue(yesterday, StatusPaid, today), "paid invoices are never overdue")
	assert.False(t, IsOverdue(tomorrow, StatusSent, today))

	// Due today is not overdue yet.
	dueToday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.False(t, IsOverdue(dueToday, StatusSent, today))
}

func TestImmutable(t *testing.T) {
	assert.True(t, (&Invoice{Status: StatusPaid}).Immutable())
	assert.False(t, (&Invoice{Status: StatusDraft}).Immutable())
	assert.False(t, (&Invoice{Status: StatusSent}).Immutable())
	assert.False(t, (&Invoice{Status: StatusOverdue}).Immutable())
}
