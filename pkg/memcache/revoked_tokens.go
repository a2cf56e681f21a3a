package mem

import (
	"context"
	"sync"
	"time"
)

// RevokedTokenStore remembers logged-out token ids until the token would
// have expired on its own.
type RevokedTokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RevokedTokens struct {
	mu   sync.RWMutex
	data map[string]time.Time
	now  func() time.Time
}

// NewRevokedTokens returns a process-local store. Revocations are lost on
// restart and are not shared between replicas.
func NewRevokedTokens() *RevokedTokens {
	return &RevokedTokens{
		data: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (s *RevokedTokens) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[jti] = s.now().Add(ttl)
	s.purgeLocked()
	return nil
}

func (s *RevokedTokens) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.data[jti]
	if !ok {
		return false, nil
	}
	return s.now().Before(expiresAt), nil
}

// purgeLocked drops entries whose token has expired anyway.
func (s *RevokedTokens) purgeLocked() {
	now := s.now()
	for jti, expiresAt := range s.data {
		if !now.Before(expiresAt) {
			delete(s.data, jti)
		}
	}
}

func (s *RevokedTokens) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
