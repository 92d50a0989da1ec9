package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var errNoConditions = errors.New("response has no weather conditions")

// Service turns raw API responses into snapshots.
type Service struct {
	client *Client
}

// NewService creates a new weather service
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// Lookup returns the current weather for cityName. Any non-success answer
// from the API, including a body without a cod, is reported as ErrNotFound.
// Transport and decoding failures, and a reply with no conditions, are
// returned wrapped.
func (s *Service) Lookup(ctx context.Context, cityName string) (Snapshot, error) {
	cur, err := s.client.GetCurrent(ctx, cityName)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return Snapshot{}, fmt.Errorf("%w: %q (%d)", ErrNotFound, cityName, se.Code)
		}
		return Snapshot{}, fmt.Errorf("failed to get current weather: %w", err)
	}

	if !cur.Cod.ok() {
		return Snapshot{}, fmt.Errorf("%w: %q (cod %s)", ErrNotFound, cityName, cur.Cod)
	}

	if len(cur.Weather) == 0 {
		return Snapshot{}, fmt.Errorf("failed to get current weather: %w", errNoConditions)
	}

	snap := transform(cur)
	if snap.CityName == "" {
		snap.CityName = cityName
	}
	return snap, nil
}

func transform(cur *CurrentResponse) Snapshot {
	snap := Snapshot{
		CityName:           cur.Name,
		TemperatureCelsius: roundTemperature(cur.Main.Temp),
	}
	if len(cur.Weather) > 0 {
		snap.Description = cur.Weather[0].Description
		snap.IconID = cur.Weather[0].Icon
	}
	return snap
}

// roundTemperature rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func roundTemperature(t float64) int {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	return int(math.Floor(t + 0.5))
}
