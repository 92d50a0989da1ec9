package theme

import (
	"context"
	"errors"
	"testing"

	"github.com/swelljoe/wthr-favorites/internal/kv"
)

type brokenStore struct {
	getErr error
	setErr error
}

func (b brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, b.getErr }
func (b brokenStore) Set(context.Context, string, string) error         { return b.setErr }

func TestParsePreference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Preference
		wantErr bool
	}{
		{in: "light", want: Light},
		{in: "dark", want: Dark},
		{in: " Dark ", want: Dark},
		{in: "LIGHT", want: Light},
		{in: "", wantErr: true},
		{in: "sepia", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePreference(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPreference) {
					t.Fatalf("ParsePreference(%q) error = %v, want ErrUnknownPreference", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParsePreference(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore(kv.NewMemory())

	for _, p := range []Preference{Light, Dark} {
		once, err := s.Toggle(ctx, p)
		if err != nil {
			t.Fatalf("Toggle(%s) error: %v", p, err)
		}
		if once == p {
			t.Fatalf("Toggle(%s) returned the same value", p)
		}
		twice, err := s.Toggle(ctx, once)
		if err != nil {
			t.Fatalf("Toggle(%s) error: %v", once, err)
		}
		if twice != p {
			t.Fatalf("Toggle(Toggle(%s)) = %s", p, twice)
		}
	}
}

func TestTogglePersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := kv.NewMemory()
	s := NewStore(backend)

	next, err := s.Toggle(ctx, Light)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	raw, found, _ := backend.Get(ctx, Key)
	if !found || raw != "dark" || next != Dark {
		t.Fatalf("stored %q (found=%v), returned %q; want dark", raw, found, next)
	}
}

func TestToggleWriteFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("read-only")
	s := NewStore(brokenStore{setErr: boom})

	next, err := s.Toggle(context.Background(), Dark)
	if !errors.Is(err, boom) {
		t.Fatalf("Toggle error = %v, want %v", err, boom)
	}
	if next != Light {
		t.Fatalf("Toggle should still return the flipped value, got %q", next)
	}
}

func TestResolveInitial(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		persisted string
		system    Preference
		want      Preference
	}{
		{name: "persisted dark beats system light", persisted: "dark", system: Light, want: Dark},
		{name: "persisted light beats system dark", persisted: "light", system: Dark, want: Light},
		{name: "no persisted uses system dark", system: Dark, want: Dark},
		{name: "no persisted uses system light", system: Light, want: Light},
		{name: "nothing defaults to light", want: Light},
		{name: "invalid system defaults to light", system: "sepia", want: Light},
		{name: "corrupt persisted falls back to system", persisted: "purple", system: Dark, want: Dark},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			backend := kv.NewMemory()
			if tt.persisted != "" {
				backend.Set(context.Background(), Key, tt.persisted)
			}
			got := NewStore(backend).ResolveInitial(context.Background(), tt.system)
			if got != tt.want {
				t.Fatalf("ResolveInitial() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveInitialReadFailure(t *testing.T) {
	t.Parallel()
	s := NewStore(brokenStore{getErr: errors.New("io")})
	if got := s.ResolveInitial(context.Background(), Dark); got != Dark {
		t.Fatalf("ResolveInitial() = %q, want system preference dark", got)
	}
}

func TestPaletteFor(t *testing.T) {
	t.Parallel()

	if PaletteFor(Dark).Background != "#000" {
		t.Errorf("dark background = %q", PaletteFor(Dark).Background)
	}
	if PaletteFor(Light).Background != "#fff" {
		t.Errorf("light background = %q", PaletteFor(Light).Background)
	}
	if PaletteFor("unknown") != PaletteFor(Light) {
		t.Error("unknown preference should use the light palette")
	}
	if len(palettes) != 2 {
		t.Errorf("expected palettes for exactly two preferences, got %d", len(palettes))
	}
}
