// Package theme owns the light/dark display preference and its persistence.
package theme

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/swelljoe/wthr-favorites/internal/kv"
)

// Key is the storage key holding the persisted preference token.
const Key = "theme"

// Preference identifies the active display mode.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// ErrUnknownPreference is returned when a token is neither light nor dark.
var ErrUnknownPreference = errors.New("unknown theme preference")

// ParsePreference parses a persisted or configured token.
func ParsePreference(s string) (Preference, error) {
	switch p := Preference(strings.ToLower(strings.TrimSpace(s))); p {
	case Light, Dark:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreference, s)
	}
}

// Valid reports whether p is light or dark.
func (p Preference) Valid() bool {
	return p == Light || p == Dark
}

// Opposite returns dark for light and light for anything else.
func (p Preference) Opposite() Preference {
	if p == Light {
		return Dark
	}
	return Light
}

// Store persists the preference through a kv.Store.
type Store struct {
	backend kv.Store
}

// NewStore creates a theme store on top of backend.
func NewStore(backend kv.Store) *Store {
	return &Store{backend: backend}
}

// Persisted returns the stored preference, if any. Read failures and
// unrecognised tokens are logged and reported as absent.
func (s *Store) Persisted(ctx context.Context) (Preference, bool) {
	raw, found, err := s.backend.Get(ctx, Key)
	if err != nil {
		log.Printf("Warning: failed to read theme: %v", err)
		return "", false
	}
	if !found {
		return "", false
	}
	p, err := ParsePreference(raw)
	if err != nil {
		log.Printf("Warning: ignoring stored theme: %v", err)
		return "", false
	}
	return p, true
}

// ResolveInitial picks the startup preference: the persisted choice, else
// system when it is light or dark, else Light.
func (s *Store) ResolveInitial(ctx context.Context, system Preference) Preference {
	if p, ok := s.Persisted(ctx); ok {
		return p
	}
	if system.Valid() {
		return system
	}
	return Light
}

// Toggle returns the opposite of current and persists it. The new value is
// returned even when the write fails.
func (s *Store) Toggle(ctx context.Context, current Preference) (Preference, error) {
	next := current.Opposite()
	if err := s.backend.Set(ctx, Key, string(next)); err != nil {
		return next, fmt.Errorf("failed to save theme: %w", err)
	}
	return next, nil
}
