package auth

import (
	"context"
	"time"
)

type EventType string

const (
	EventLogin          EventType = "login"
	EventLogout         EventType = "logout"
	EventRegister       EventType = "register"
	EventOTPVerified    EventType = "otp_verified"
	EventSessionExpired EventType = "session_expired"
)

// Event is a session lifecycle transition. It never carries the token.
type Event struct {
	Type       EventType `json:"type"`
	SessionID  string    `json:"session_id"`
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (t EventType) IsValid() bool {
	switch t {
	case EventLogin, EventLogout, EventRegister, EventOTPVerified, EventSessionExpired:
		return true
	}
	return false
}

// EventPublisher receives lifecycle events. Delivery is best effort.
type EventPublisher interface {
	PublishSessionEvent(ctx context.Context, e Event) error
}
