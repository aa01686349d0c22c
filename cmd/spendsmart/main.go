package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"spendsmart/internal/api"
	"spendsmart/internal/cli"
	apphttp "spendsmart/internal/http"
	"spendsmart/internal/log"
	"spendsmart/internal/session"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig()

	ctx := context.Background()
	result := cli.InitSessionStore(ctx, logger, cfg)
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Failed to close session store", log.FieldError, err)
		}
	}()

	store := session.NewStore(result.KV)
	client := api.New(cfg.APIBaseURL, store,
		api.WithTimeout(cfg.APITimeout),
		api.WithLogger(logger))

	opts := apphttp.Options{
		Addr:   cfg.ListenAddr(),
		Logger: logger,
		API:    client,
		Store:  store,
		Cookies: session.CookieConfig{
			Name:   cfg.CookieName,
			Secure: cfg.CookieSecure,
			MaxAge: cfg.CookieMaxAge,
		},
		CacheTTL:           cfg.CacheTTL,
		CacheSize:          cfg.CacheSize,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		TrustedProxies:     cfg.TrustedProxies,
	}
	if p, ok := result.KV.(pinger); ok {
		opts.Ready = p.Ping
	}

	// A nil *amqp.Client must not end up in the interface
	events := cli.ConnectEvents(logger, cfg)
	if events != nil {
		defer events.Close()
		opts.Events = events
	}

	srv, err := apphttp.NewServer(opts)
	if err != nil {
		logger.Error("Failed to build HTTP server", log.FieldError, err)
		os.Exit(1)
	}

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	logger.Info("Starting spendsmart server",
		"addr", cfg.ListenAddr(),
		"api", client.BaseURL(),
		"session_backend", cfg.SessionBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "addr", cfg.ListenAddr())
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.Info("Server stopped gracefully")
}
