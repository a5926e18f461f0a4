package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrSeriesNotFound      = errors.New("invoice series not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrCompanyNotFound     = errors.New("company information not set")
	ErrBankAccountNotFound = errors.New("bank account not found")
	ErrConflict            = errors.New("conflict with current state")
	ErrInvoiceImmutable    = errors.New("paid invoices cannot be modified")
	ErrSeriesChange        = errors.New("changing series is not supported for existing invoices")
	ErrDuplicateSeriesCode = errors.New("series code already exists")
	ErrDuplicateAccount    = errors.New("bank account number already exists")
	ErrDefaultAccount      = errors.New("cannot delete the default bank account")
	ErrClientHasInvoices   = errors.New("client has invoices and cannot be deleted")
	ErrValidation          = errors.New("validation failed")
	ErrTransition          = errors.New("status transition not allowed")
)

// ValidationError reports a field-scoped input error. It unwraps to
// ErrValidation so callers can match the whole class with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validationf builds a ValidationError for field with a formatted message.
func Validationf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// TransitionError reports an illegal status change, naming both states.
// It unwraps to ErrTransition.
type TransitionError struct {
	From InvoiceStatus
	To   InvoiceStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition from %q to %q is not allowed", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrTransition }
