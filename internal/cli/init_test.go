package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendsmart/internal/config"
	"spendsmart/internal/log"
)

func TestSetupLoggerHonoursLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	logger := SetupLogger(&config.Config{LogLevel: "warn", LogFormat: "json"})
	ctx := context.Background()
	assert.False(t, logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, logger.Enabled(ctx, slog.LevelWarn))
	assert.Equal(t, log.ComponentApp, logger.Component())
}

func TestLoadAndValidateConfigExitsOnInvalid(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "postgres")
	defer slog.SetDefault(slog.Default())

	code := -1
	exit = func(c int) { code = c }
	defer func() { exit = os.Exit }()

	cfg, _ := LoadAndValidateConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 1, code)
}

func TestInitSessionStore(t *testing.T) {
	cfg := &config.Config{SessionBackend: "bolt", BoltDBPath: filepath.Join(t.TempDir(), "s.bolt")}
	result := InitSessionStore(context.Background(), log.Discard(), cfg)
	require.NotNil(t, result)
	t.Cleanup(func() { result.Cleanup() })

	ctx := context.Background()
	require.NoError(t, result.KV.Put(ctx, "sid", map[string]string{"token": "t"}))
	got, err := result.KV.Get(ctx, "sid", "token")
	require.NoError(t, err)
	assert.Equal(t, "t", got)
}

func TestConnectEventsDisabledWithoutURL(t *testing.T) {
	assert.Nil(t, ConnectEvents(log.Discard(), &config.Config{}))
}

func TestShutdownRunsCleanup(t *testing.T) {
	sig := make(chan os.Signal, 1)
	cleaned := make(chan struct{})
	ctx, done := shutdownOn(sig, log.Discard(), time.Second, func(context.Context) { close(cleaned) })

	sig <- os.Interrupt
	WaitForShutdown(ctx, done)

	select {
	case <-cleaned:
	default:
		t.Fatal("cleanup did not run")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	sig := make(chan os.Signal, 1)
	block := make(chan struct{})
	defer close(block)
	ctx, done := shutdownOn(sig, log.Discard(), 10*time.Millisecond, func(context.Context) { <-block })

	sig <- os.Interrupt
	WaitForShutdown(ctx, done)
	assert.Error(t, ctx.Err())
}
