// Package memory is an in-process storage.KV used for development and tests.
// Entries are lost on restart.
package memory

import (
	"context"
	"sync"

	"spendsmart/internal/storage"
)

type Store struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
}

var _ storage.KV = (*Store)(nil)

func New() *Store {
	return &Store{scopes: make(map[string]map[string]string)}
}

func (s *Store) Get(_ context.Context, scope, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.scopes[scope][key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (s *Store) Put(_ context.Context, scope string, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.scopes[scope]
	if !ok {
		m = make(map[string]string, len(entries))
		s.scopes[scope] = m
	}
	for k, v := range entries {
		m[k] = v
	}
	return nil
}

func (s *Store) Delete(_ context.Context, scope string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.scopes[scope]
	for _, k := range keys {
		delete(m, k)
	}
	if len(m) == 0 {
		delete(s.scopes, scope)
	}
	return nil
}

func (s *Store) Close() error { return nil }
