package issuance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/imrishuroy/go-certify/internal/artifacts"
	"github.com/imrishuroy/go-certify/internal/certificates"
	"github.com/imrishuroy/go-certify/internal/events"
)

// Service issues and validates certificates.
type Service struct {
	records   RecordStore
	artifacts ArtifactStore
	renderer  Renderer
	template  Template
	publisher EventPublisher // optional
	logger    *zap.Logger
	nowFunc   func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithPublisher enables issuance events.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLogger sets the logger; defaults to zap.L().
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService wires the issuance workflow.
func NewService(records RecordStore, store ArtifactStore, renderer Renderer, tmpl Template, opts ...Option) *Service {
	s := &Service{
		records:   records,
		artifacts: store,
		renderer:  renderer,
		template:  tmpl,
		logger:    zap.L(),
		nowFunc:   time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Issue registers the recipient (once per id), renders the certificate and
// uploads it under <id>.pdf.
//
// The document is always built from the request's name and grade, even when
// a record for the id already exists with different values. Render and
// upload failures are returned as *DependencyError; store failures are
// returned as plain errors.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (IssueResult, error) {
	log := s.logger.With(zap.String("certificate_id", req.ID), zap.String("request_id", req.RequestID))

	existing, err := s.records.Find(ctx, req.ID)
	if err != nil {
		return IssueResult{}, fmt.Errorf("find certificate %s: %w", req.ID, err)
	}

	newRecord := false
	if existing == nil {
		newRecord, err = s.records.CreateIfAbsent(ctx, certificates.Record{
			ID:    req.ID,
			Name:  req.Name,
			Grade: req.Grade,
		})
		if err != nil {
			return IssueResult{}, fmt.Errorf("create certificate %s: %w", req.ID, err)
		}
		if !newRecord {
			log.Info("certificate registered concurrently, keeping existing record")
		}
	} else {
		log.Info("certificate already registered, skipping write")
	}

	html, err := s.template.Execute(req.ID, req.Name, req.Grade)
	if err != nil {
		return IssueResult{}, err
	}

	pdf, err := s.renderer.Render(ctx, html)
	if err != nil {
		log.Error("render failed", zap.Error(err))
		return IssueResult{}, &DependencyError{Op: OpRender, ID: req.ID, Err: err}
	}

	url, err := s.artifacts.Put(ctx, artifacts.Key(req.ID), pdf)
	if err != nil {
		log.Error("upload failed", zap.Error(err))
		return IssueResult{}, &DependencyError{Op: OpUpload, ID: req.ID, Err: err}
	}

	log.Info("certificate generated", zap.String("url", url), zap.Bool("new_record", newRecord), zap.Int("bytes", len(pdf)))
	s.publish(ctx, log, events.IssuedEvent{
		ID:        req.ID,
		Grade:     req.Grade,
		URL:       url,
		NewRecord: newRecord,
		IssuedAt:  s.nowFunc().UTC(),
		RequestID: req.RequestID,
	})

	return IssueResult{Message: MessageGenerated, URL: url, NewRecord: newRecord}, nil
}

func (s *Service) publish(ctx context.Context, log *zap.Logger, ev events.IssuedEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishIssued(ctx, ev); err != nil {
		log.Warn("failed to publish issued event", zap.Error(err))
	}
}

// Validate reports whether a certificate was issued for id.
func (s *Service) Validate(ctx context.Context, id string) (ValidationResult, error) {
	rec, err := s.records.Find(ctx, id)
	if err != nil {
		return ValidationResult{}, fmt.Errorf("find certificate %s: %w", id, err)
	}
	if rec == nil {
		return ValidationResult{Valid: false, Message: MessageNotValid, ID: id}, nil
	}
	return ValidationResult{Valid: true, Message: MessageValid, ID: rec.ID, Record: rec}, nil
}
