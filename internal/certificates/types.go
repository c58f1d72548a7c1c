package certificates

import "time"

// TimestampLayout is the ISO-8601 layout used for created_at (millisecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record represents the item stored in the certificates DynamoDB table.
type Record struct {
	ID        string `dynamodbav:"id"` // PK
	Name      string `dynamodbav:"name"`
	Grade     string `dynamodbav:"grade"`
	CreatedAt string `dynamodbav:"created_at"` // ISO-8601, set on first write
}

// FormatTimestamp renders t the way created_at is persisted.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
