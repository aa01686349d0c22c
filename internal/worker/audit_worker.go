package worker

import (
	"context"
	"fmt"
	"time"

	"spendsmart/internal/auth"
	"spendsmart/internal/log"
	"spendsmart/internal/storage/sqlite"
)

// EventLog is the append-only sink for session events
type EventLog interface {
	AppendEvent(ctx context.Context, e sqlite.SessionEvent) (int64, error)
	CountEvents(ctx context.Context) (int64, error)
}

// AuditWorker records consumed session events in the event log
type AuditWorker struct {
	events EventLog
	logger *log.Logger
	now    func() time.Time
}

func NewAuditWorker(events EventLog, logger *log.Logger) *AuditWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &AuditWorker{
		events: events,
		logger: logger.WithComponent(log.ComponentWorker),
		now:    time.Now,
	}
}

// HandleEvent appends e to the log. Events without a username are recorded
// under their email, which is all otp_verified carries.
func (w *AuditWorker) HandleEvent(ctx context.Context, e auth.Event) error {
	username := e.Username
	if username == "" {
		username = e.Email
	}
	occurred := e.OccurredAt
	if occurred.IsZero() {
		occurred = w.now()
	}

	id, err := w.events.AppendEvent(ctx, sqlite.SessionEvent{
		Type:       string(e.Type),
		SessionID:  e.SessionID,
		Username:   username,
		OccurredAt: occurred,
	})
	if err != nil {
		return fmt.Errorf("record %s event: %w", e.Type, err)
	}

	w.logger.InfoContext(ctx, "Recorded session event",
		"event_id", id,
		log.FieldEventType, e.Type,
		log.FieldSessionID, e.SessionID,
		log.FieldUsername, username)
	return nil
}

// LogBacklog reports how many events are already recorded
func (w *AuditWorker) LogBacklog(ctx context.Context) (int64, error) {
	n, err := w.events.CountEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("count session events: %w", err)
	}
	w.logger.InfoContext(ctx, "Audit log ready", "recorded_events", n)
	return n, nil
}
