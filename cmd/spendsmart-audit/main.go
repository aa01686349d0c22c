package main

import (
	"context"
	"errors"
	"os"
	"time"

	"spendsmart/internal/amqp"
	"spendsmart/internal/cli"
	"spendsmart/internal/log"
	"spendsmart/internal/storage/sqlite"
	"spendsmart/internal/worker"
)

// spendsmart-audit consumes session events from the broker and appends
// them to the SQLite audit log.
func main() {
	cli.LoadEnvFile()
	cfg, logger := cli.LoadAndValidateConfig()
	logger = logger.WithComponent(log.ComponentWorker)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	db, err := sqlite.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open audit database", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer db.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	w := worker.NewAuditWorker(db, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)
	if _, err := w.LogBacklog(ctx); err != nil {
		logger.Warn("Failed to count recorded events", log.FieldError, err)
	}

	logger.Info("Starting spendsmart-audit", "queue", cfg.AMQPQueue, "db_path", cfg.SQLiteDBPath)
	if err := client.ConsumeSessionEvents(ctx, w.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Audit worker stopped")
}
