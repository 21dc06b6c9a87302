package session

import (
	"sync"

	"github.com/bizboard/backoffice/internal/core/domain"
)

// Store is the client-side credential store. Tokens live and die as a pair:
// Set refuses a partial pair and Clear removes both, so no failure mode can
// leave one token behind.
type Store struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func NewStore() *Store {
	return &Store{}
}

// Set persists both tokens atomically. A pair missing either token is
// rejected with ErrTokenPersistence and the store is left untouched.
func (s *Store) Set(pair domain.TokenPair) error {
	if !pair.Complete() {
		return domain.ErrTokenPersistence
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = pair.AccessToken
	s.refresh = pair.RefreshToken
	return nil
}

// Get returns the named token, or absent. Valid names are
// domain.AccessTokenName and domain.RefreshTokenName.
func (s *Store) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch name {
	case domain.AccessTokenName:
		return s.access, s.access != ""
	case domain.RefreshTokenName:
		return s.refresh, s.refresh != ""
	}
	return "", false
}

// Clear removes both tokens. Idempotent and safe when the store is empty.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
}
