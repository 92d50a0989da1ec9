// Package app holds the screen controllers: the state and transitions
// behind the weather lookup, favorites and theme screens, independent of
// how they are rendered.
package app

import (
	"context"
	"errors"

	"github.com/swelljoe/wthr-favorites/internal/weather"
)

// WeatherLookup fetches current weather for a city name.
type WeatherLookup interface {
	Lookup(ctx context.Context, cityName string) (weather.Snapshot, error)
}

var (
	ErrEmptyQuery   = errors.New("please enter a valid city")
	ErrCityNotFound = errors.New("city not found")
	ErrLookupFailed = errors.New("failed to fetch weather data")
	// ErrSuperseded is returned by a search whose result was discarded
	// because a newer search or a cleared query replaced it.
	ErrSuperseded = errors.New("search superseded")
)

// UserMessage returns the text shown to the user for a controller error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return ErrEmptyQuery.Error()
	case errors.Is(err, ErrCityNotFound):
		return ErrCityNotFound.Error()
	case errors.Is(err, ErrLookupFailed):
		return ErrLookupFailed.Error()
	default:
		return err.Error()
	}
}

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeInfo
	NoticeSuccess
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeInfo:
		return "info"
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "none"
	}
}

// Notice is a transient, dismissible message for the user. It is never
// persisted.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool { return n.Kind == NoticeNone }

func info(msg string) Notice    { return Notice{Kind: NoticeInfo, Message: msg} }
func success(msg string) Notice { return Notice{Kind: NoticeSuccess, Message: msg} }
func failure(msg string) Notice { return Notice{Kind: NoticeError, Message: msg} }
