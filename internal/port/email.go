package port

import "context"

// EmailSender delivers a rendered invoice to a client.
type EmailSender interface {
	SendInvoice(ctx context.Context, toEmail, toName, subject, body string, pdf []byte, filename string) error
}
