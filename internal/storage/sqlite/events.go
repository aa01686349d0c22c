package sqlite

import (
	"context"
	"fmt"
	"time"
)

const (
	// Fixed width so that text ordering matches time ordering
	eventTimeLayout  = "2006-01-02T15:04:05.000000000Z07:00"
	sqliteTimeLayout = "2006-01-02 15:04:05"
)

// SessionEvent is one row of the session audit log.
type SessionEvent struct {
	ID         int64
	Type       string
	SessionID  string
	Username   string
	OccurredAt time.Time
	RecordedAt time.Time
}

// AppendEvent records an event and returns its row id.
func (s *Store) AppendEvent(ctx context.Context, e SessionEvent) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO session_events (type, session_id, username, occurred_at) VALUES (?, ?, ?, ?)`,
		e.Type, e.SessionID, e.Username, e.OccurredAt.UTC().Format(eventTimeLayout))
	if err != nil {
		return 0, fmt.Errorf("insert session event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session event id: %w", err)
	}
	return id, nil
}

// ListEvents returns the most recent events first.
func (s *Store) ListEvents(ctx context.Context, limit int) ([]SessionEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, session_id, username, occurred_at, recorded_at
		FROM session_events
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var (
			e                    SessionEvent
			occurred, recordedAt string
		)
		if err := rows.Scan(&e.ID, &e.Type, &e.SessionID, &e.Username, &occurred, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		if e.OccurredAt, err = time.Parse(eventTimeLayout, occurred); err != nil {
			return nil, fmt.Errorf("parse occurred_at %q: %w", occurred, err)
		}
		// Best effort: the default column value uses sqlite's own layout
		e.RecordedAt, _ = time.Parse(sqliteTimeLayout, recordedAt)
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEvents returns the number of recorded events.
func (s *Store) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM session_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count session events: %w", err)
	}
	return n, nil
}
