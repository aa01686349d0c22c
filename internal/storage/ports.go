// Package storage defines the key-value port used to persist per-browser
// session entries. Backends live in the sqlite, bolt and memory subpackages.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key is absent in the scope.
var ErrNotFound = errors.New("storage: key not found")

// KV is a scoped key-value store. A scope groups the entries of one browser.
type KV interface {
	// Get returns the value for key in scope, or ErrNotFound.
	Get(ctx context.Context, scope, key string) (string, error)
	// Put writes every entry or none of them.
	Put(ctx context.Context, scope string, entries map[string]string) error
	// Delete removes the keys; absent keys are not an error.
	Delete(ctx context.Context, scope string, keys ...string) error
	// Close releases the underlying resources.
	Close() error
}
