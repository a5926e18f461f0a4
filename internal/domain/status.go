package domain

import "time"

// CanTransition reports whether an explicit status change is legal.
//
// Allowed: draft→sent, sent→paid, and any unpaid status→overdue. Repeating
// the current status is rejected as a no-op. Nothing leaves paid.
func CanTransition(from, to InvoiceStatus) bool {
	if from == to {
		return false
	}
	if from == StatusPaid {
		return false
	}
	if to == StatusOverdue {
		return true
	}
	switch {
	case from == StatusDraft && to == StatusSent:
		return true
	case from == StatusSent && to == StatusPaid:
		return true
	}
	return false
}

// Transition applies a status change after checking the transition table.
// On rejection the invoice is left untouched.
func (inv *Invoice) Transition(to InvoiceStatus) error {
	if !to.Valid() {
		return Validationf("status", "unknown status %q", string(to))
	}
	if !CanTransition(inv.Status, to) {
		return &TransitionError{From: inv.Status, To: to}
	}
	inv.Status = to
	return nil
}

// IsOverdue reports the derived overdue condition: the due date has passed
// and the invoice is not paid. The stored status may lag behind this until
// the overdue sweep persists it.
func IsOverdue(dueDate time.Time, status InvoiceStatus, today time.Time) bool {
	if status == StatusPaid {
		return false
	}
	return dueDate.Before(truncateToDay(today))
}

// Immutable reports whether the invoice rejects structural mutation.
// Once paid, items, dates, and references are frozen.
func (inv *Invoice) Immutable() bool {
	return inv.Status == StatusPaid
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
