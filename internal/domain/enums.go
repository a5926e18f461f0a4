package domain

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusSent    InvoiceStatus = "sent"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// AllStatuses lists every valid invoice status.
var AllStatuses = []InvoiceStatus{StatusDraft, StatusSent, StatusPaid, StatusOverdue}

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// ParseStatus converts a string to an InvoiceStatus.
func ParseStatus(v string) (InvoiceStatus, bool) {
	s := InvoiceStatus(v)
	return s, s.Valid()
}

// ClientType distinguishes buyers from suppliers in the client register.
type ClientType string

const (
	ClientTypeClient   ClientType = "client"
	ClientTypeSupplier ClientType = "supplier"
)

// Valid reports whether t is a known client type.
func (t ClientType) Valid() bool {
	return t == ClientTypeClient || t == ClientTypeSupplier
}

// ParseClientType converts a string to a ClientType.
func ParseClientType(v string) (ClientType, bool) {
	t := ClientType(v)
	return t, t.Valid()
}
