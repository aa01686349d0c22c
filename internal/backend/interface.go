package backend

import (
	"context"

	"spendsmart/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the session store and its cleanup function
type Result struct {
	KV      storage.KV
	Cleanup CleanupFunc
}

// Factory creates session stores based on configuration
type Factory interface {
	// Create opens the store selected by config
	Create(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for store creation
type Config struct {
	Type Type

	SQLiteDBPath string
	BoltDBPath   string
}

// Type represents the kind of session store
type Type string

const (
	SQLiteBackend Type = "sqlite"
	BoltBackend   Type = "bolt"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, BoltBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
