package issuance

import (
	"context"

	"github.com/imrishuroy/go-certify/internal/certificates"
	"github.com/imrishuroy/go-certify/internal/events"
)

// Response messages
const (
	MessageGenerated = "Certificate successfully generated."
	MessageFailed    = "Something went wrong."
	MessageValid     = "The certificate is valid."
	MessageNotValid  = "Certificate not valid!"
)

// RecordStore is the record store used by both operations.
type RecordStore interface {
	Find(ctx context.Context, id string) (*certificates.Record, error)
	CreateIfAbsent(ctx context.Context, rec certificates.Record) (bool, error)
}

// ArtifactStore receives the rendered PDF.
type ArtifactStore interface {
	Put(ctx context.Context, key string, body []byte) (string, error)
}

// Renderer turns certificate HTML into a PDF.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// Template produces certificate HTML.
type Template interface {
	Execute(id, name, grade string) (string, error)
}

// EventPublisher is notified after every successful issuance.
type EventPublisher interface {
	PublishIssued(ctx context.Context, ev events.IssuedEvent) error
}

// IssueRequest carries the recipient data of an issuance.
type IssueRequest struct {
	ID        string
	Name      string
	Grade     string
	RequestID string
}

// IssueResult is returned when a certificate was rendered and uploaded.
type IssueResult struct {
	Message   string
	URL       string
	NewRecord bool // false when a record for the id already existed
}

// ValidationResult is the outcome of a lookup by id.
type ValidationResult struct {
	Valid   bool
	Message string
	ID      string
	Record  *certificates.Record // nil when not valid
}
