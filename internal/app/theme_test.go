package app

import (
	"context"
	"errors"
	"testing"

	"github.com/swelljoe/wthr-favorites/internal/kv"
	"github.com/swelljoe/wthr-favorites/internal/theme"
)

func TestThemeControllerInit(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	c := NewThemeController(theme.NewStore(backend))

	if c.Current() != theme.Light {
		t.Fatalf("default = %q, want light", c.Current())
	}
	if got := c.Init(ctx, theme.Dark); got != theme.Dark {
		t.Errorf("Init with system dark = %q", got)
	}

	backend.Set(ctx, theme.Key, "light")
	if got := c.Init(ctx, theme.Dark); got != theme.Light {
		t.Errorf("persisted light should win, got %q", got)
	}
}

func TestThemeControllerToggle(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	c := NewThemeController(theme.NewStore(backend))
	c.Init(ctx, "")

	if n := c.Toggle(ctx); !n.IsZero() {
		t.Fatalf("unexpected notice %+v", n)
	}
	if c.Current() != theme.Dark || c.Palette().Background != "#000" {
		t.Errorf("after toggle: %q %+v", c.Current(), c.Palette())
	}

	// A fresh controller on the same storage starts dark.
	again := NewThemeController(theme.NewStore(backend))
	if got := again.Init(ctx, theme.Light); got != theme.Dark {
		t.Errorf("persisted toggle not picked up, got %q", got)
	}

	c.Toggle(ctx)
	if c.Current() != theme.Light {
		t.Errorf("second toggle = %q, want light", c.Current())
	}
}

func TestThemeControllerToggleSaveFailure(t *testing.T) {
	ctx := context.Background()
	backend := &flakyStore{Store: kv.NewMemory()}
	c := NewThemeController(theme.NewStore(backend))
	c.Init(ctx, theme.Light)

	backend.failWrites(errors.New("read-only"))
	n := c.Toggle(ctx)
	if n.Kind != NoticeError {
		t.Fatalf("notice = %+v, want error", n)
	}
	if c.Current() != theme.Dark {
		t.Errorf("switch should flip even when saving fails, got %q", c.Current())
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrEmptyQuery, "please enter a valid city"},
		{errors.Join(ErrCityNotFound, errors.New("cod 404")), "city not found"},
		{errors.Join(ErrLookupFailed, errNetwork), "failed to fetch weather data"},
		{errors.New("other"), "other"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
