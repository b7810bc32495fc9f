// Package credentials resolves which Gemini API key a generation call
// uses. Keys are process-local state only: persisting them is outside
// this core's responsibility.
package credentials

import (
	"context"
	"errors"
	"strings"
	"sync"

	"adgen/internal/domain"
)

// KeySelector is the optional host capability that lets the embedding
// environment pick a key on the user's behalf. A nil selector skips
// that resolution tier.
type KeySelector interface {
	HasSelectedKey(ctx context.Context) (bool, error)
	OpenSelectKey(ctx context.Context) error
}

// Store holds the process-wide credential state. Safe for concurrent
// use: the UI may set a custom key while generations are in flight.
type Store struct {
	mu        sync.RWMutex
	customKey string

	selector KeySelector
	ambient  func() string
}

// NewStore constructs a Store. ambient supplies the environment-level
// key (usually from config) and is re-read on every resolution so a key
// injected after the host's select-key flow is picked up.
func NewStore(selector KeySelector, ambient func() string) *Store {
	if ambient == nil {
		ambient = func() string { return "" }
	}
	return &Store{selector: selector, ambient: ambient}
}

// SetCustomKey records an explicit user-supplied key. It takes priority
// over every other source until replaced.
func (s *Store) SetCustomKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("gemini api key is required")
	}
	s.mu.Lock()
	s.customKey = key
	s.mu.Unlock()
	return nil
}

// CustomKey returns the user-supplied key, or empty when none was set.
func (s *Store) CustomKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customKey
}

// Resolve picks the key for one call: user-set key first, then the host
// selector flow, then the ambient environment key. It returns
// domain.ErrNoAPIKey when every tier comes up empty. Resolve itself
// never touches the network.
func (s *Store) Resolve(ctx context.Context) (string, error) {
	if key := s.CustomKey(); key != "" {
		return key, nil
	}

	if s.selector != nil {
		selected, err := s.selector.HasSelectedKey(ctx)
		if err != nil {
			return "", err
		}
		if !selected {
			// The host injects the chosen key into the ambient
			// environment once the user completes the flow.
			if err := s.selector.OpenSelectKey(ctx); err != nil {
				return "", err
			}
		}
	}

	if key := strings.TrimSpace(s.ambient()); key != "" {
		return key, nil
	}
	return "", domain.ErrNoAPIKey
}
