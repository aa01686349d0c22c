package http

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"spendsmart/internal/api"
	"spendsmart/internal/auth"
	"spendsmart/internal/log"
	"spendsmart/internal/session"
)

// handlerFunc is a page handler that may fail. Failures go through the
// error boundary.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to http.HandlerFunc. fallback is shown when the error
// carries no backend message.
func (s *Server) handle(fallback string, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.handleError(w, r, fallback, err)
		}
	}
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, fallback string, err error) {
	if s.sessionExpired(w, r, err) {
		return
	}

	ctx := r.Context()
	log.NewStructuredLogger(log.FromContext(ctx)).LogError(ctx, "Request failed", err,
		log.ComponentHTTP, r.Method, log.LogFields{
			log.FieldPath:     r.URL.Path,
			log.FieldUpstream: api.StatusCode(err),
		})

	status := http.StatusBadGateway
	msg := messageOr(err, fallback)
	switch {
	case errors.Is(err, errBadRequest):
		status, msg = http.StatusBadRequest, msgInvalidRequest
	case errors.Is(err, errInvalidID):
		status = http.StatusNotFound
	case api.StatusCode(err) == http.StatusNotFound:
		status = http.StatusNotFound
	}

	if isHTMX(r) {
		switch {
		case status == http.StatusBadRequest:
			BadRequestError(msg).NoSwap().TriggerErrorNotification(msg).Write(w)
			return
		case status == http.StatusNotFound:
			NotFoundError(msg).NoSwap().TriggerErrorNotification(msg).Write(w)
			return
		case r.Method != http.MethodGet:
			// Keep the row or form on screen.
			NewHTMXResponse().NoSwap().TriggerErrorNotification(msg).Write(w)
			return
		}
	}
	s.renderError(w, r, status, msg)
}

// sessionExpired runs the expiry flow when err is a 401 and reports whether
// it did.
func (s *Server) sessionExpired(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, api.ErrSessionExpired) {
		return false
	}
	s.expire(r.Context())
	setFlash(w, flashInfo, msgSessionExpired)
	redirect(w, r, "/login")
	return true
}

type expirer interface {
	Expire(ctx context.Context)
}

// expire drops the browser's persisted session and cached pages.
func (s *Server) expire(ctx context.Context) {
	atomic.AddInt64(&s.metrics.sessionsExpired, 1)
	id, ok := session.IDFromContext(ctx)
	if !ok {
		return
	}
	if e, ok := auth.FromContext(ctx).(expirer); ok {
		e.Expire(ctx)
	} else if err := s.store.Clear(ctx, id); err != nil {
		log.FromContext(ctx).WithComponent(log.ComponentSession).ErrorContext(ctx,
			"Failed to clear expired session", log.FieldSessionID, id, log.FieldError, err)
	}
	s.pages.Forget(id)
}

// messageOr returns the backend's message for err, or fallback.
func messageOr(err error, fallback string) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return fallback
}
