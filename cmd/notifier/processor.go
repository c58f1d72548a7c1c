package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/imrishuroy/go-certify/internal/events"
)

// MetricsRecorder records one issuance.
type MetricsRecorder interface {
	RecordIssued(ctx context.Context, grade string, newRecord bool, at time.Time) error
}

// Processor handles SQS messages carrying issuance events.
type Processor struct {
	metrics MetricsRecorder
	logger  *zap.Logger
}

// NewProcessor creates a new notifier processor.
func NewProcessor(metrics MetricsRecorder, logger *zap.Logger) *Processor {
	return &Processor{metrics: metrics, logger: logger}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev lambdaevents.SQSEvent) error {
	p.logger.Debug("received SQS batch", zap.Int("records", len(ev.Records)))
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			p.logger.Error("notifier error", zap.String("message_id", rec.MessageId), zap.Error(err))
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec lambdaevents.SQSMessage) error {
	var msg events.IssuedEvent
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if msg.ID == "" {
		return fmt.Errorf("invalid message body: missing id")
	}

	at := msg.IssuedAt
	if at.IsZero() {
		at = time.Now()
	}
	if err := p.metrics.RecordIssued(ctx, msg.Grade, msg.NewRecord, at); err != nil {
		return fmt.Errorf("record metric for %s: %w", msg.ID, err)
	}

	p.logger.Info("certificate issued",
		zap.String("certificate_id", msg.ID),
		zap.String("grade", msg.Grade),
		zap.Bool("new_record", msg.NewRecord),
		zap.String("url", msg.URL),
		zap.String("request_id", msg.RequestID),
	)
	return nil
}
