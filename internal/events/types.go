package events

import "time"

// IssuedEvent is the payload sent from API -> SQS -> notifier after a certificate was issued.
type IssuedEvent struct {
	ID        string    `json:"id"`
	Grade     string    `json:"grade"`
	URL       string    `json:"url"`
	NewRecord bool      `json:"new_record"` // false when the id was already registered
	IssuedAt  time.Time `json:"issued_at"`
	RequestID string    `json:"request_id,omitempty"`
}
