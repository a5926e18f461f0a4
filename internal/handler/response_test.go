package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"faktura/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invoice not found", domain.ErrInvoiceNotFound, http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{"client not found", domain.ErrClientNotFound, http.StatusNotFound, "CLIENT_NOT_FOUND"},
		{"immutable", domain.ErrInvoiceImmutable, http.StatusConflict, "INVOICE_IMMUTABLE"},
		{"series change", domain.ErrSeriesChange, http.StatusConflict, "SERIES_CHANGE"},
		{"duplicate series", domain.ErrDuplicateSeriesCode, http.StatusConflict, "DUPLICATE_SERIES_CODE"},
		{"client has invoices", domain.ErrClientHasInvoices, http.StatusConflict, "CLIENT_HAS_INVOICES"},
		{"validation", domain.Validationf("quantity", "must be non-negative"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"transition", &domain.TransitionError{From: domain.StatusPaid, To: domain.StatusSent}, http.StatusConflict, "INVALID_TRANSITION"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestMapDomainError_ValidationMessagePassedThrough(t *testing.T) {
	err := domain.Validationf("due_date", "due date cannot be earlier than invoice date")
	_, _, msg := MapDomainError(err)
	assert.Equal(t, "due date cannot be earlier than invoice date", msg)
}
