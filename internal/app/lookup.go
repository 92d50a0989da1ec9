package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/swelljoe/wthr-favorites/internal/favorites"
	"github.com/swelljoe/wthr-favorites/internal/weather"
)

// LookupState is what the lookup screen displays.
type LookupState struct {
	Query    string
	Snapshot *weather.Snapshot
	Err      error
	Loading  bool
}

// LookupController drives the weather lookup screen.
type LookupController struct {
	weather   WeatherLookup
	favorites *favorites.Store

	mu       sync.Mutex
	query    string
	snapshot *weather.Snapshot
	err      error
	loading  bool
	// gen increases whenever an in-flight search result must be ignored.
	gen uint64
}

// NewLookupController creates the lookup screen controller.
func NewLookupController(w WeatherLookup, f *favorites.Store) *LookupController {
	return &LookupController{weather: w, favorites: f}
}

// State returns a copy of the current screen state.
func (c *LookupController) State() LookupState {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := LookupState{Query: c.query, Err: c.err, Loading: c.loading}
	if c.snapshot != nil {
		snap := *c.snapshot
		st.Snapshot = &snap
	}
	return st
}

// SetQuery records the text typed into the search box. An empty or blank
// query clears the displayed result and error, and any search in flight is
// dropped when it completes.
func (c *LookupController) SetQuery(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = text
	if strings.TrimSpace(text) == "" {
		c.snapshot = nil
		c.err = nil
		c.loading = false
		c.gen++
	}
}

// Prefill sets the query without searching, as when another screen asks to
// open the lookup screen for a city.
func (c *LookupController) Prefill(city string) {
	c.SetQuery(city)
}

// Deactivate marks the screen as gone. Results of searches still in flight
// are discarded.
func (c *LookupController) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.loading = false
}

// Search looks up cityName and updates the displayed state. Blank input is
// rejected before any network call. A not-found answer clears the previous
// result; any other failure leaves it on screen.
func (c *LookupController) Search(ctx context.Context, cityName string) error {
	city := strings.TrimSpace(cityName)

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.query = cityName
	if city == "" {
		c.snapshot = nil
		c.err = ErrEmptyQuery
		c.loading = false
		c.mu.Unlock()
		return ErrEmptyQuery
	}
	c.err = nil
	c.loading = true
	c.mu.Unlock()

	snap, err := c.weather.Lookup(ctx, city)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrSuperseded
	}
	c.loading = false

	switch {
	case err == nil:
		c.snapshot = &snap
		c.err = nil
	case errors.Is(err, weather.ErrNotFound):
		c.snapshot = nil
		c.err = fmt.Errorf("%w: %w", ErrCityNotFound, err)
	default:
		log.Printf("Weather error: %v", err)
		c.err = fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	return c.err
}

// SaveCurrentToFavorites bookmarks the displayed city. With nothing
// displayed it does nothing and returns a zero Notice.
func (c *LookupController) SaveCurrentToFavorites(ctx context.Context) Notice {
	c.mu.Lock()
	var name string
	if c.snapshot != nil {
		name = c.snapshot.CityName
	}
	c.mu.Unlock()

	if name == "" {
		return Notice{}
	}

	res, err := c.favorites.Add(ctx, name)
	if err != nil {
		log.Printf("Failed to save favorite %q: %v", name, err)
		return failure("could not save favorite")
	}
	if res == favorites.AlreadyExists {
		return info(fmt.Sprintf("%s is already saved in favorites", name))
	}
	return success(fmt.Sprintf("%s saved to favorites", name))
}
