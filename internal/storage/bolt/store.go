// Package bolt implements storage.KV on top of go.etcd.io/bbolt. Each scope
// is a nested bucket under the top-level sessions bucket.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"

	"spendsmart/internal/storage"
)

var sessionsBucket = []byte("sessions")

type Store struct {
	db *bbolt.DB
}

var _ storage.KV = (*Store)(nil)

// Open opens (or creates) the bbolt file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Get(_ context.Context, scope, key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(sessionsBucket).Bucket([]byte(scope))
		if b == nil {
			return storage.ErrNotFound
		}
		v := b.Get([]byte(key))
		if v == nil {
			return storage.ErrNotFound
		}
		// v is only valid for the life of the transaction
		value = string(v)
		return nil
	})
	return value, err
}

func (s *Store) Put(_ context.Context, scope string, entries map[string]string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.Bucket(sessionsBucket).CreateBucketIfNotExists([]byte(scope))
		if err != nil {
			return fmt.Errorf("scope bucket %s: %w", scope, err)
		}
		for k, v := range entries {
			if err := b.Put([]byte(k), []byte(v)); err != nil {
				return fmt.Errorf("put %s/%s: %w", scope, k, err)
			}
		}
		return nil
	})
}

func (s *Store) Delete(_ context.Context, scope string, keys ...string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(sessionsBucket)
		b := root.Bucket([]byte(scope))
		if b == nil {
			return nil
		}
		for _, k := range keys {
			if err := b.Delete([]byte(k)); err != nil {
				return fmt.Errorf("delete %s/%s: %w", scope, k, err)
			}
		}
		// Drop the scope once it holds nothing
		if k, _ := b.Cursor().First(); k == nil {
			return root.DeleteBucket([]byte(scope))
		}
		return nil
	})
}
