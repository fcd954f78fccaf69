// Package session persists the authenticated identity and its bearer token.
//
// The persisted identity is trusted as-is on load: there is no local expiry
// check and no re-validation against the backend.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/storage"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

type Store struct {
	mu    sync.Mutex
	store storage.Store
	log   logging.Logger
}

func NewStore(s storage.Store, log logging.Logger) *Store {
	return &Store{store: s, log: log.With("component", "session")}
}

// Save writes identity and token in one transaction.
func (s *Store) Save(ctx context.Context, identity models.Identity, token string) error {
	if !identity.Valid() {
		return fmt.Errorf("refusing to save incomplete identity %+v", identity)
	}
	if token == "" {
		return fmt.Errorf("refusing to save empty token")
	}
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Update(ctx, func(ctx context.Context, r storage.Repository) error {
		if err := r.Set(ctx, storage.KeyUser, data); err != nil {
			return err
		}
		return r.Set(ctx, storage.KeyToken, []byte(token))
	})
}

// SaveIdentity replaces the stored identity and keeps the stored token.
func (s *Store) SaveIdentity(ctx context.Context, identity models.Identity) error {
	if !identity.Valid() {
		return fmt.Errorf("refusing to save incomplete identity %+v", identity)
	}
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Set(ctx, storage.KeyUser, data)
}

// Load returns the stored identity and token. A missing, unparsable or
// incomplete record yields (nil, "", nil) and is purged from storage.
func (s *Store) Load(ctx context.Context) (*models.Identity, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return nil, "", err
	}
	raw, err := s.store.Get(ctx, storage.KeyUser)
	if err != nil {
		return nil, "", err
	}

	if len(token) == 0 || len(raw) == 0 {
		if len(token) != 0 || len(raw) != 0 {
			s.log.Info(ctx, "partial session found, clearing")
			return nil, "", s.purge(ctx)
		}
		return nil, "", nil
	}

	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		s.log.Warn(ctx, "stored identity is not valid JSON, clearing", "error", err)
		return nil, "", s.purge(ctx)
	}
	if !identity.Valid() {
		s.log.Warn(ctx, "stored identity is incomplete, clearing")
		return nil, "", s.purge(ctx)
	}

	return &identity, string(token), nil
}

// Token returns the stored bearer token, or "" if there is none.
func (s *Store) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// Clear removes both the identity and the token.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purge(ctx)
}

func (s *Store) purge(ctx context.Context) error {
	if err := s.store.Delete(ctx, storage.KeyToken, storage.KeyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
