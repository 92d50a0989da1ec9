// Package favorites owns the user's bookmarked cities. The collection is
// persisted as one JSON array under a single key and every mutation is a
// full load-modify-save round trip.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/swelljoe/wthr-favorites/internal/kv"
	"github.com/swelljoe/wthr-favorites/internal/weather"
)

// Key is the storage key holding the serialized collection.
const Key = "favoriteCities"

// City is one bookmarked city with its last known weather.
type City struct {
	Name        string  `json:"name"`
	Temperature *int    `json:"temperature,omitempty"`
	Description *string `json:"description,omitempty"`
	SavedAt     string  `json:"savedAt,omitempty"`
}

// Collection is the ordered list of favorites, in insertion order.
type Collection []City

// Index returns the position of the city named name, or -1. Matching is
// exact: no case folding or whitespace trimming.
func (c Collection) Index(name string) int {
	for i, city := range c {
		if city.Name == name {
			return i
		}
	}
	return -1
}

// Contains reports whether a city named name is present.
func (c Collection) Contains(name string) bool {
	return c.Index(name) >= 0
}

// Clone returns a deep copy so callers can't alias stored pointers.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, city := range c {
		out[i] = city
		if city.Temperature != nil {
			t := *city.Temperature
			out[i].Temperature = &t
		}
		if city.Description != nil {
			d := *city.Description
			out[i].Description = &d
		}
	}
	return out
}

type AddResult int

const (
	Added AddResult = iota
	AlreadyExists
)

func (r AddResult) String() string {
	if r == AlreadyExists {
		return "already exists"
	}
	return "added"
}

type UpdateResult int

const (
	Updated UpdateResult = iota
	NotFound
)

func (r UpdateResult) String() string {
	if r == NotFound {
		return "not found"
	}
	return "updated"
}

// Store reads and writes the favorites collection through a kv.Store.
// Mutations made through one Store are serialized.
type Store struct {
	backend kv.Store
	now     func() time.Time
	mu      sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp SavedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a favorites store on top of backend.
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{backend: backend, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted collection. It never fails: a read or decode
// error is logged and an empty collection is returned.
func (s *Store) Load(ctx context.Context) Collection {
	c, err := s.read(ctx)
	if err != nil {
		log.Printf("Warning: failed to load favorites: %v", err)
		return Collection{}
	}
	return c
}

// read distinguishes backend failures, which are returned, from corrupt
// data, which is logged and treated as an empty collection.
func (s *Store) read(ctx context.Context) (Collection, error) {
	raw, found, err := s.backend.Get(ctx, Key)
	if err != nil {
		return nil, err
	}
	if !found || raw == "" {
		return Collection{}, nil
	}

	var c Collection
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		log.Printf("Warning: discarding unreadable favorites: %v", err)
		return Collection{}, nil
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

// Save serializes c and overwrites the stored collection.
func (s *Store) Save(ctx context.Context, c Collection) error {
	if c == nil {
		c = Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.backend.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// Add appends a city named name unless one with exactly that name exists.
func (s *Store) Add(ctx context.Context, name string) (AddResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.read(ctx)
	if err != nil {
		return Added, fmt.Errorf("failed to load favorites: %w", err)
	}
	if c.Contains(name) {
		return AlreadyExists, nil
	}

	c = append(c, City{Name: name, SavedAt: s.now().UTC().Format(time.RFC3339)})
	if err := s.Save(ctx, c); err != nil {
		return Added, err
	}
	return Added, nil
}

// UpdateWeather stores snap's temperature and description on the city named
// name. Other entries are left as they are. Nothing is written when the
// city is not a favorite.
func (s *Store) UpdateWeather(ctx context.Context, name string, snap weather.Snapshot) (UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.read(ctx)
	if err != nil {
		return NotFound, fmt.Errorf("failed to load favorites: %w", err)
	}
	i := c.Index(name)
	if i < 0 {
		return NotFound, nil
	}

	temp := snap.TemperatureCelsius
	desc := snap.Description
	c[i].Temperature = &temp
	c[i].Description = &desc
	if err := s.Save(ctx, c); err != nil {
		return Updated, err
	}
	return Updated, nil
}

// Remove drops the city named name and returns the resulting collection.
// Removing a city that isn't there succeeds.
func (s *Store) Remove(ctx context.Context, name string) (Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	kept := make(Collection, 0, len(c))
	for _, city := range c {
		if city.Name != name {
			kept = append(kept, city)
		}
	}
	if err := s.Save(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}
