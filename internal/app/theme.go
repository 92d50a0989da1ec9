package app

import (
	"context"
	"log"
	"sync"

	"github.com/swelljoe/wthr-favorites/internal/theme"
)

// ThemeController drives the dark-mode switch on the settings screen and
// answers which palette is active. Pass it to whatever renders.
type ThemeController struct {
	store *theme.Store

	mu      sync.Mutex
	current theme.Preference
}

// NewThemeController creates a controller starting in light mode; call Init
// to load the real preference.
func NewThemeController(store *theme.Store) *ThemeController {
	return &ThemeController{store: store, current: theme.Light}
}

// Init resolves the startup preference from storage and the system setting.
// Pass an empty system preference when the platform has none.
func (c *ThemeController) Init(ctx context.Context, system theme.Preference) theme.Preference {
	p := c.store.ResolveInitial(ctx, system)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = p
	return p
}

// Current returns the active preference.
func (c *ThemeController) Current() theme.Preference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Palette returns the colours for the active preference.
func (c *ThemeController) Palette() theme.Palette {
	return theme.PaletteFor(c.Current())
}

// Toggle flips the preference. The switch flips even if saving fails; the
// returned notice reports the failure.
func (c *ThemeController) Toggle(ctx context.Context) Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.store.Toggle(ctx, c.current)
	c.current = next
	if err != nil {
		log.Printf("Failed to save theme: %v", err)
		return failure("could not save theme")
	}
	return Notice{}
}
