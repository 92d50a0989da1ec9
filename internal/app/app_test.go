package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/swelljoe/wthr-favorites/internal/kv"
	"github.com/swelljoe/wthr-favorites/internal/weather"
)

// fakeWeather answers lookups from a fixed table. Cities missing from the
// table are reported as not found.
type fakeWeather struct {
	mu      sync.Mutex
	results map[string]weather.Snapshot
	errs    map[string]error
	calls   []string
	// gate, when set, blocks lookups until a value is received.
	gate chan struct{}
}

func newFakeWeather() *fakeWeather {
	return &fakeWeather{
		results: map[string]weather.Snapshot{
			"Lisbon": {CityName: "Lisbon", TemperatureCelsius: 19, Description: "céu limpo", IconID: "01d"},
			"Porto":  {CityName: "Porto", TemperatureCelsius: 15, Description: "nublado", IconID: "04d"},
		},
		errs: map[string]error{},
	}
}

func (f *fakeWeather) Lookup(ctx context.Context, city string) (weather.Snapshot, error) {
	f.mu.Lock()
	f.calls = append(f.calls, city)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return weather.Snapshot{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.errs[city]; ok {
		return weather.Snapshot{}, err
	}
	if snap, ok := f.results[city]; ok {
		return snap, nil
	}
	return weather.Snapshot{}, fmt.Errorf("%w: %q", weather.ErrNotFound, city)
}

func (f *fakeWeather) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// flakyStore fails writes on demand.
type flakyStore struct {
	kv.Store
	mu     sync.Mutex
	setErr error
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	err := f.setErr
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return f.Store.Set(ctx, key, value)
}

func (f *flakyStore) failWrites(err error) {
	f.mu.Lock()
	f.setErr = err
	f.mu.Unlock()
}

var errNetwork = errors.New("network unreachable")
