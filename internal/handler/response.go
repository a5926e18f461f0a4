package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"faktura/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Message
	}
	var transitionErr *domain.TransitionError
	if errors.As(err, &transitionErr) {
		return http.StatusConflict, "INVALID_TRANSITION", transitionErr.Error()
	}

	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "CLIENT_NOT_FOUND", "client not found"
	case errors.Is(err, domain.ErrSeriesNotFound):
		return http.StatusNotFound, "SERIES_NOT_FOUND", "invoice series not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound, "COMPANY_NOT_FOUND", "company details have not been set up"
	case errors.Is(err, domain.ErrBankAccountNotFound):
		return http.StatusNotFound, "BANK_ACCOUNT_NOT_FOUND", "bank account not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrInvoiceImmutable):
		return http.StatusConflict, "INVOICE_IMMUTABLE", "paid invoices cannot be modified or deleted"
	case errors.Is(err, domain.ErrSeriesChange):
		return http.StatusConflict, "SERIES_CHANGE", "an invoice cannot be moved to a different series"
	case errors.Is(err, domain.ErrDuplicateSeriesCode):
		return http.StatusConflict, "DUPLICATE_SERIES_CODE", "series code already exists"
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict, "DUPLICATE_ACCOUNT", "bank account number already exists"
	case errors.Is(err, domain.ErrDefaultAccount):
		return http.StatusConflict, "DEFAULT_ACCOUNT", "the default bank account cannot be deleted; set another default first"
	case errors.Is(err, domain.ErrClientHasInvoices):
		return http.StatusConflict, "CLIENT_HAS_INVOICES", "client has invoices and cannot be deleted"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "CONFLICT", "resource conflict"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", "invalid request"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%v] internal error: %v", requestID, err)
	}
	// ValidationError carries the offending field; keep it in the payload.
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(status, APIResponse{
			Success: false,
			Error:   &APIError{Code: code, Message: msg, Field: validationErr.Field},
		})
		return
	}
	RespondError(c, status, code, msg)
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
