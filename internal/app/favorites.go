package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/swelljoe/wthr-favorites/internal/favorites"
	"github.com/swelljoe/wthr-favorites/internal/weather"
)

// Screen names a top-level screen a controller can ask to navigate to.
type Screen string

const (
	ScreenLookup    Screen = "lookup"
	ScreenFavorites Screen = "favorites"
	ScreenSettings  Screen = "settings"
)

// NavigationRequest asks the front end to show Screen, pre-filled with City.
type NavigationRequest struct {
	Screen Screen
	City   string
}

// Navigator receives navigation requests.
type Navigator func(NavigationRequest)

// FavoritesController drives the favorites screen. Its list is a cache of
// the store and is reloaded whenever the screen is shown.
type FavoritesController struct {
	store    *favorites.Store
	weather  WeatherLookup
	navigate Navigator

	mu      sync.Mutex
	items   favorites.Collection
	loading map[string]bool
}

// NewFavoritesController creates the favorites screen controller. navigate
// may be nil.
func NewFavoritesController(store *favorites.Store, w WeatherLookup, navigate Navigator) *FavoritesController {
	return &FavoritesController{
		store:    store,
		weather:  w,
		navigate: navigate,
		items:    favorites.Collection{},
		loading:  make(map[string]bool),
	}
}

// LoadOnFocus drops the cached list and reloads it from the store. Call it
// every time the screen becomes visible.
func (c *FavoritesController) LoadOnFocus(ctx context.Context) favorites.Collection {
	items := c.store.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	return items.Clone()
}

// Favorites returns a copy of the displayed list.
func (c *FavoritesController) Favorites() favorites.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Clone()
}

// IsLoading reports whether a refresh for the row named name is in flight.
func (c *FavoritesController) IsLoading(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading[name]
}

// Refresh fetches current weather for one favorite and stores it. Only that
// row is marked loading, so other rows stay usable. On failure the stored
// values are left alone. Names missing from the displayed list are not
// looked up.
func (c *FavoritesController) Refresh(ctx context.Context, name string) Notice {
	c.mu.Lock()
	if c.items.Index(name) < 0 {
		c.mu.Unlock()
		return info(fmt.Sprintf("%s is not in favorites", name))
	}
	if c.loading[name] {
		c.mu.Unlock()
		return info(fmt.Sprintf("%s is already refreshing", name))
	}
	c.loading[name] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.loading, name)
		c.mu.Unlock()
	}()

	snap, err := c.weather.Lookup(ctx, name)
	if err != nil {
		if !errors.Is(err, weather.ErrNotFound) {
			log.Printf("Weather error: %v", err)
		}
		return failure(fmt.Sprintf("could not refresh %s", name))
	}

	res, err := c.store.UpdateWeather(ctx, name, snap)
	if err != nil {
		log.Printf("Failed to update favorite %q: %v", name, err)
		return failure(fmt.Sprintf("could not save weather for %s", name))
	}
	if res == favorites.NotFound {
		return info(fmt.Sprintf("%s is no longer in favorites", name))
	}

	c.mu.Lock()
	if i := c.items.Index(name); i >= 0 {
		temp := snap.TemperatureCelsius
		desc := snap.Description
		c.items[i].Temperature = &temp
		c.items[i].Description = &desc
	}
	c.mu.Unlock()

	return success(fmt.Sprintf("%s updated", name))
}

// Remove deletes a favorite. The displayed list becomes the collection the
// store returns.
func (c *FavoritesController) Remove(ctx context.Context, name string) Notice {
	items, err := c.store.Remove(ctx, name)
	if err != nil {
		log.Printf("Failed to remove favorite %q: %v", name, err)
		return failure(fmt.Sprintf("could not remove %s", name))
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	return success(fmt.Sprintf("%s removed from favorites", name))
}

// Select handles a tap on a favorite's name: it asks to open the lookup
// screen for that city. No data changes.
func (c *FavoritesController) Select(name string) NavigationRequest {
	req := NavigationRequest{Screen: ScreenLookup, City: name}
	if c.navigate != nil {
		c.navigate(req)
	}
	return req
}
