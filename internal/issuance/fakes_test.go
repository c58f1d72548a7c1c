package issuance

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/imrishuroy/go-certify/internal/certificates"
	"github.com/imrishuroy/go-certify/internal/events"
)

type fakeRecords struct {
	mu      sync.Mutex
	records map[string]certificates.Record
	now     time.Time
	findErr error
	putErr  error
	writes  int
}

func newFakeRecords(now time.Time) *fakeRecords {
	return &fakeRecords{records: map[string]certificates.Record{}, now: now}
}

func (f *fakeRecords) Find(ctx context.Context, id string) (*certificates.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeRecords) CreateIfAbsent(ctx context.Context, rec certificates.Record) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return false, f.putErr
	}
	if _, ok := f.records[rec.ID]; ok {
		return false, nil
	}
	rec.CreatedAt = certificates.FormatTimestamp(f.now)
	f.records[rec.ID] = rec
	f.writes++
	return true, nil
}

type fakeArtifacts struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func newFakeArtifacts() *fakeArtifacts {
	return &fakeArtifacts{objects: map[string][]byte{}}
}

func (f *fakeArtifacts) Put(ctx context.Context, key string, body []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.objects[key] = body
	return "https://svlessicertify.s3.amazonaws.com/" + key, nil
}

// fakeRenderer returns the HTML bytes as the "PDF" and tracks open/close pairs.
type fakeRenderer struct {
	err      error
	launched int
	closed   int
}

func (f *fakeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	f.launched++
	defer func() { f.closed++ }()
	if f.err != nil {
		return nil, f.err
	}
	return []byte(html), nil
}

type fakeTemplate struct {
	err error
}

func (f fakeTemplate) Execute(id, name, grade string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return id + "|" + name + "|" + grade, nil
}

type fakePublisher struct {
	events []events.IssuedEvent
	err    error
}

func (f *fakePublisher) PublishIssued(ctx context.Context, ev events.IssuedEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

var errUnavailable = errors.New("service unavailable")
