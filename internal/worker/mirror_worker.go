// Package worker consumes record change events and mirrors them to
// Google Sheets.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"spendbook/internal/amqp"
)

// EventAppender writes one event row to the mirror.
type EventAppender interface {
	AppendEvent(ctx context.Context, msg *amqp.RecordEventMessage) error
}

type MirrorWorker struct {
	appender EventAppender
}

func NewMirrorWorker(appender EventAppender) *MirrorWorker {
	return &MirrorWorker{appender: appender}
}

// HandleEvent mirrors a single record change event. Errors propagate so
// the consumer can nack and requeue the delivery.
func (w *MirrorWorker) HandleEvent(ctx context.Context, msg *amqp.RecordEventMessage) error {
	slog.InfoContext(ctx, "Processing record event",
		"action", msg.Action,
		"id", msg.ID)

	if err := w.appender.AppendEvent(ctx, msg); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}
