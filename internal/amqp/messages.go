package amqp

import (
	"encoding/json"
	"errors"
	"fmt"

	"spendsmart/internal/auth"
)

var ErrInvalidEvent = errors.New("invalid session event")

// EncodeEvent renders e as the wire JSON body
func EncodeEvent(e auth.Event) ([]byte, error) {
	return json.Marshal(e)
}

// DecodeEvent parses a message body. Unknown event types and missing
// session IDs are rejected.
func DecodeEvent(data []byte) (auth.Event, error) {
	var e auth.Event
	if err := json.Unmarshal(data, &e); err != nil {
		return auth.Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if !e.Type.IsValid() {
		return auth.Event{}, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if e.SessionID == "" {
		return auth.Event{}, fmt.Errorf("%w: missing session_id", ErrInvalidEvent)
	}
	return e, nil
}
