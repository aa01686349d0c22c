package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"spendsmart/internal/core"
	"spendsmart/internal/log"
	"spendsmart/internal/session"
)

// SessionStore persists token and user for a browser identity.
type SessionStore interface {
	Save(ctx context.Context, id, token string, user core.User) error
	Load(ctx context.Context, id string) (session.Session, bool, error)
	Clear(ctx context.Context, id string) error
}

// Session is the lifecycle of one browser identity. It starts in the
// loading state until Init restores whatever was persisted.
type Session struct {
	id      string
	store   SessionStore
	backend Backend
	events  EventPublisher
	logger  *log.Logger
	now     func() time.Time

	mu    sync.RWMutex
	state State
}

var _ Service = (*Session)(nil)

type Option func(*Session)

// WithEvents publishes lifecycle events to p.
func WithEvents(p EventPublisher) Option {
	return func(s *Session) { s.events = p }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l.WithComponent(log.ComponentAuth)
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func NewSession(id string, store SessionStore, backend Backend, opts ...Option) *Session {
	s := &Session{
		id:      id,
		store:   store,
		backend: backend,
		logger:  log.New(log.DefaultConfig()).WithComponent(log.ComponentAuth),
		now:     time.Now,
		state:   State{Loading: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the browser identity this session belongs to.
func (s *Session) ID() string {
	return s.id
}

// Init restores a persisted session. Loading is false afterwards whatever
// the outcome; a store failure leaves the session unauthenticated.
func (s *Session) Init(ctx context.Context) {
	sess, ok, err := s.store.Load(ctx, s.id)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to restore session",
			log.FieldSessionID, s.id, log.FieldError, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		user := sess.User
		s.state.User = &user
		s.state.IsAuthenticated = true
	}
	s.state.Loading = false
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func (s *Session) Login(ctx context.Context, username, password string) Result {
	resp, err := s.backend.Login(ctx, username, password)
	if err != nil {
		s.logger.InfoContext(ctx, "Login rejected",
			log.FieldSessionID, s.id, log.FieldUsername, username, log.FieldError, err)
		return failure(backendMessage(err, MsgLoginFailed))
	}
	if resp.Token == "" {
		s.logger.WarnContext(ctx, "Login response without token", log.FieldSessionID, s.id)
		return failure(MsgLoginFailed)
	}

	user := core.User{Username: resp.Username, Email: resp.Email}
	// Store write precedes the in-memory update
	if err := s.store.Save(ctx, s.id, resp.Token, user); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist session",
			log.FieldSessionID, s.id, log.FieldError, err)
		return failure(MsgLoginFailed)
	}

	s.mu.Lock()
	s.state.User = &user
	s.state.IsAuthenticated = true
	s.state.Loading = false
	s.mu.Unlock()

	s.publish(ctx, EventLogin, user.Username, user.Email)
	return Result{Success: true}
}

// Logout forgets the session locally. The backend is not contacted.
func (s *Session) Logout(ctx context.Context) {
	username := s.reset(ctx)
	s.publish(ctx, EventLogout, username, "")
}

// Expire is Logout for a token the backend no longer accepts.
func (s *Session) Expire(ctx context.Context) {
	username := s.reset(ctx)
	s.publish(ctx, EventSessionExpired, username, "")
}

func (s *Session) reset(ctx context.Context) string {
	if err := s.store.Clear(ctx, s.id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear session",
			log.FieldSessionID, s.id, log.FieldError, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	username := ""
	if s.state.User != nil {
		username = s.state.User.Username
	}
	s.state.User = nil
	s.state.IsAuthenticated = false
	s.state.Loading = false
	return username
}

// Register creates a pending account. No session is established.
func (s *Session) Register(ctx context.Context, req core.RegisterRequest) Result {
	data, err := s.backend.Register(ctx, req)
	if err != nil {
		return failure(backendMessage(err, MsgRegisterFailed))
	}
	s.publish(ctx, EventRegister, req.Username, req.Email)
	return Result{Success: true, Data: data}
}

// VerifyOTP completes a registration. The user still has to log in.
func (s *Session) VerifyOTP(ctx context.Context, email, otp string) Result {
	data, err := s.backend.VerifyOTP(ctx, email, otp)
	if err != nil {
		return failure(backendMessage(err, MsgVerifyFailed))
	}
	s.publish(ctx, EventOTPVerified, "", email)
	return Result{Success: true, Data: data}
}

func (s *Session) ResendOTP(ctx context.Context, email string) Result {
	data, err := s.backend.ResendOTP(ctx, email)
	if err != nil {
		return failure(backendMessage(err, MsgResendFailed))
	}
	return Result{Success: true, Data: data}
}

func (s *Session) publish(ctx context.Context, typ EventType, username, email string) {
	log.NewStructuredLogger(s.logger).LogSessionEvent(ctx, string(typ), s.id, username)
	if s.events == nil {
		return
	}
	err := s.events.PublishSessionEvent(ctx, Event{
		Type:       typ,
		SessionID:  s.id,
		Username:   username,
		Email:      email,
		OccurredAt: s.now().UTC(),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.WarnContext(ctx, "Failed to publish session event",
			log.FieldEventType, string(typ), log.FieldSessionID, s.id, log.FieldError, err)
	}
}
