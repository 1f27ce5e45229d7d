package oauth2

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"travelagg/pkg/cache"
)

var ErrStateNotFound = errors.New("state not found or expired")

const statePrefix = "oauth2:state:"

// StateStore keeps the nonce issued with each authorization state. Entries
// are single use.
type StateStore struct {
	cache cache.Cache
}

func NewStateStore(c cache.Cache) *StateStore {
	return &StateStore{cache: c}
}

func (s *StateStore) Save(ctx context.Context, state, nonce string, ttl time.Duration) error {
	if err := s.cache.Set(ctx, statePrefix+state, nonce, ttl); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Take returns the nonce for state and removes it.
func (s *StateStore) Take(ctx context.Context, state string) (string, error) {
	key := statePrefix + state
	nonce, err := s.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrMiss) || (err == nil && nonce == "") {
		return "", ErrStateNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load state: %w", err)
	}
	if err := s.cache.Del(ctx, key); err != nil {
		return "", fmt.Errorf("failed to delete state: %w", err)
	}
	return nonce, nil
}

// GenerateRandomString returns n random bytes, base64url encoded.
func GenerateRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
