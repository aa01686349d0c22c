package http

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"spendsmart/internal/auth"
	"spendsmart/internal/cache"
	"spendsmart/internal/log"
	"spendsmart/internal/middleware/ratelimit"
	"spendsmart/internal/middleware/security"
	"spendsmart/internal/middleware/trace"
	"spendsmart/internal/session"
	appweb "spendsmart/web"
)

// Options wires the server to its collaborators.
type Options struct {
	Addr    string
	Logger  *log.Logger
	API     Backend
	Store   *session.Store
	Cookies session.CookieConfig

	// Events receives session lifecycle events; nil disables publishing.
	Events auth.EventPublisher
	// Ready reports whether the session storage is usable; nil means always.
	Ready func(ctx context.Context) error

	CacheTTL           time.Duration
	CacheSize          int
	CacheCleanup       time.Duration
	RateLimitPerMinute int
	// TrustedProxies lists CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
	Now            func() time.Time
}

type Server struct {
	http.Server

	logger   *log.Logger
	api      Backend
	store    *session.Store
	events   auth.EventPublisher
	ready    func(ctx context.Context) error
	cookies  session.CookieConfig
	now      func() time.Time
	renderer *renderer

	pages        *cache.PageCache
	cacheManager *cache.Manager
	limiter      *ratelimit.Limiter
	tracer       *trace.Middleware
	detector     *security.Detector

	metrics      appMetrics
	shutdownOnce sync.Once
}

type appMetrics struct {
	uptime          time.Time
	cacheHits       int64
	cacheMisses     int64
	sessionsExpired int64
}

// NewServer parses the embedded templates and builds the router. It fails
// when a template does not parse.
func NewServer(opts Options) (*Server, error) {
	if opts.API == nil || opts.Store == nil {
		return nil, errors.New("http: backend client and session store are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 500
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 2 * time.Minute
	}
	if opts.CacheCleanup <= 0 {
		opts.CacheCleanup = 10 * time.Minute
	}

	rd, err := newRenderer(appweb.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}

	detector := security.NewDetector()
	for _, cidr := range opts.TrustedProxies {
		if err := detector.AddTrustedProxy(cidr); err != nil {
			return nil, fmt.Errorf("http: %w", err)
		}
	}
	s := &Server{
		logger:       logger.WithComponent(log.ComponentHTTP),
		api:          opts.API,
		store:        opts.Store,
		events:       opts.Events,
		ready:        opts.Ready,
		cookies:      opts.Cookies,
		now:          now,
		renderer:     rd,
		pages:        cache.NewPageCache(opts.CacheSize, opts.CacheTTL),
		cacheManager: cache.NewManager(logger),
		limiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		tracer:       trace.NewMiddleware(detector.ExtractClientIP),
		detector:     detector,
		metrics:      appMetrics{uptime: now()},
	}
	s.pages.Register(s.cacheManager)
	s.cacheManager.StartCleanup(opts.CacheCleanup)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s, nil
}

func (s *Server) routes(logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(log.Middleware(logger))
	r.Use(s.tracer.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(s.detector.Middleware(logger))
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", s.handleMetrics)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssetMiddleware(3600)).Handle("/static/*", static)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	r.Group(func(r chi.Router) {
		r.Use(session.Cookies(s.cookies))
		r.Use(s.loadSession)

		r.Get("/", s.handleLanding)

		r.Group(func(r chi.Router) {
			r.Use(s.requireGuest)

			r.Get("/login", s.handleLoginPage)
			r.Get("/register", s.handleRegisterPage)
			r.Get("/verify-otp", s.handleVerifyOTPPage)
			r.Get("/forgot-password", s.handleForgotPasswordPage)
			r.Get("/reset-password", s.handleResetPasswordPage)

			r.Group(func(r chi.Router) {
				r.Use(s.limiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited))

				r.Post("/login", s.handleLogin)
				r.Post("/register", s.handleRegister)
				r.Post("/verify-otp", s.handleVerifyOTP)
				r.Post("/verify-otp/resend", s.handleResendOTP)
				r.Post("/forgot-password", s.handleForgotPassword)
				r.Post("/reset-password/verify", s.handleVerifyResetOTP)
				r.Post("/reset-password/resend", s.handleResendResetOTP)
				r.Post("/reset-password", s.handleResetPassword)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/logout", s.handleLogout)
			r.Get("/dashboard", s.handle(msgDashboardFailed, s.handleDashboard))

			r.Get("/transactions", s.handle(msgTransactionsFailed, s.handleTransactions))
			r.Post("/transactions", s.handle(msgTransactionSave, s.handleCreateTransaction))
			r.Get("/transactions/{id}", s.handle(msgTransactionsFailed, s.handleEditTransaction))
			r.Post("/transactions/{id}", s.handle(msgTransactionSave, s.handleUpdateTransaction))
			r.Delete("/transactions/{id}", s.handle(msgTransactionDelete, s.handleDeleteTransaction))
			r.Post("/transactions/{id}/delete", s.handle(msgTransactionDelete, s.handleDeleteTransaction))

			r.Get("/categories", s.handle(msgCategoriesFailed, s.handleCategories))
			r.Post("/categories", s.handle(msgCategoryAction, s.handleCreateCategory))
			r.Get("/categories/{id}", s.handle(msgCategoriesFailed, s.handleEditCategory))
			r.Post("/categories/{id}", s.handle(msgCategoryAction, s.handleUpdateCategory))
			r.Delete("/categories/{id}", s.handle(msgCategoryDelete, s.handleDeleteCategory))
			r.Post("/categories/{id}/delete", s.handle(msgCategoryDelete, s.handleDeleteCategory))

			r.Get("/reports", s.handle(msgReportsFailed, s.handleReports))
			r.Get("/reports/export.csv", s.handle(msgReportsFailed, s.handleExportReport))
			r.Get("/reports/print", s.handle(msgReportsFailed, s.handleReportPrint))

			r.Get("/profile", s.handle(msgProfileFailed, s.handleProfile))
			r.Post("/profile", s.handle(msgProfileUpdate, s.handleUpdateProfile))
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, r, http.StatusNotFound, msgPageNotFound)
	})
	return r
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(),
		"Rate limit exceeded",
		log.FieldClientIP, s.detector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	s.renderError(w, r, http.StatusTooManyRequests, msgTooManyAttempts)
}

// Shutdown stops the background cleanup loops and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
