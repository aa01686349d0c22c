// Package session persists the authentication token and user snapshot of
// each browser, and carries the browser identity through request contexts.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"spendsmart/internal/core"
	"spendsmart/internal/storage"
)

// Well-known entry names within a browser's scope.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Session is what survives between page loads for one browser.
type Session struct {
	Token string
	User  core.User
}

// Store is the persistent session store over a storage.KV.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Save writes token and user together. Nothing is written when the user
// cannot be encoded.
func (s *Store) Save(ctx context.Context, id, token string, user core.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Put(ctx, id, map[string]string{
		KeyToken: token,
		KeyUser:  string(data),
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the persisted session. ok is false when either entry is
// missing. A user entry that is not a JSON object is treated as corrupt:
// both entries are removed and ok is false.
func (s *Store) Load(ctx context.Context, id string) (sess Session, ok bool, err error) {
	token, err := s.get(ctx, id, KeyToken)
	if err != nil || token == "" {
		return Session{}, false, err
	}
	raw, err := s.get(ctx, id, KeyUser)
	if err != nil || raw == "" {
		return Session{}, false, err
	}

	user, perr := parseUser(raw)
	if perr != nil {
		if err := s.Clear(ctx, id); err != nil {
			return Session{}, false, err
		}
		return Session{}, false, nil
	}
	return Session{Token: token, User: user}, true, nil
}

// Clear removes both entries. Clearing an empty scope is not an error.
func (s *Store) Clear(ctx context.Context, id string) error {
	if err := s.kv.Delete(ctx, id, KeyToken, KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Token returns the persisted token for the browser identity in ctx, or ""
// when there is none. It reads only the token entry.
func (s *Store) Token(ctx context.Context) (string, error) {
	id, ok := IDFromContext(ctx)
	if !ok {
		return "", nil
	}
	return s.get(ctx, id, KeyToken)
}

// get maps storage.ErrNotFound to an empty value.
func (s *Store) get(ctx context.Context, id, key string) (string, error) {
	v, err := s.kv.Get(ctx, id, key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session %s: %w", key, err)
	}
	return v, nil
}

var errNotObject = errors.New("user entry is not a JSON object")

func parseUser(raw string) (core.User, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 || data[0] != '{' {
		return core.User{}, errNotObject
	}
	var u core.User
	if err := json.Unmarshal(data, &u); err != nil {
		return core.User{}, err
	}
	return u, nil
}
