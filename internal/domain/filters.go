package domain

import (
	"time"

	"github.com/google/uuid"
)

// Invoice list sort keys.
const (
	SortByDate   = "date"
	SortByNumber = "number"
	SortByTotal  = "total"
	SortByStatus = "status"
)

// InvoiceFilter narrows invoice queries. Nil/zero fields are ignored.
type InvoiceFilter struct {
	Status   InvoiceStatus
	ClientID uuid.UUID
	SeriesID uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time

	SortBy     string
	Descending bool
	Offset     int
	Limit      int
}

// ClientFilter narrows client queries.
type ClientFilter struct {
	Search     string
	ClientType ClientType
	Offset     int
	Limit      int
}
