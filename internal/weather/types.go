package weather

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the API does not answer with a success code
// for the requested city.
var ErrNotFound = errors.New("city not found")

const iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"

// Snapshot is a point-in-time lookup result for one city.
type Snapshot struct {
	CityName           string `json:"city_name"`
	TemperatureCelsius int    `json:"temperature_celsius"`
	Description        string `json:"description"`
	IconID             string `json:"icon_id"`
}

// IconURL returns the image URL for the snapshot's condition icon.
func (s Snapshot) IconURL() string {
	if s.IconID == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, s.IconID)
}
