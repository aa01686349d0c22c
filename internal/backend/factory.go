package backend

import (
	"context"
	"fmt"

	"spendsmart/internal/log"
	"spendsmart/internal/storage/bolt"
	"spendsmart/internal/storage/memory"
	"spendsmart/internal/storage/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// Create implements Factory.Create
func (f *DefaultFactory) Create(_ context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		store, err := sqlite.Open(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
		f.logger.Info("Initialized SQLite session store", "db_path", config.SQLiteDBPath)
		return &Result{KV: store, Cleanup: store.Close}, nil

	case BoltBackend:
		store, err := bolt.Open(config.BoltDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize bolt store: %w", err)
		}
		f.logger.Info("Initialized bolt session store", "db_path", config.BoltDBPath)
		return &Result{KV: store, Cleanup: store.Close}, nil

	case MemoryBackend:
		f.logger.Warn("Initialized memory session store, sessions will not survive a restart")
		store := memory.New()
		return &Result{KV: store, Cleanup: store.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
