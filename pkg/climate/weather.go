package climate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Weather is the coarse sky condition of a day.
type Weather string

const (
	Sunny        Weather = "sunny"
	PartlyCloudy Weather = "partly_cloudy"
	Cloudy       Weather = "cloudy"
	Rainy        Weather = "rainy"
	Stormy       Weather = "stormy"
)

// Weathers lists every condition from brightest to darkest.
var Weathers = []Weather{Sunny, PartlyCloudy, Cloudy, Rainy, Stormy}

// ErrUnknownWeather is returned by ParseWeather for unrecognised names.
var ErrUnknownWeather = errors.New("unknown weather")

// ParseWeather accepts the canonical names plus a few spellings used by
// weather feeds ("partly-cloudy", "Partly Cloudy", "rain", "storm").
func ParseWeather(s string) (Weather, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.NewReplacer("-", "_", " ", "_").Replace(k)
	switch k {
	case "sunny", "clear":
		return Sunny, nil
	case "partly_cloudy":
		return PartlyCloudy, nil
	case "cloudy", "overcast":
		return Cloudy, nil
	case "rainy", "rain":
		return Rainy, nil
	case "stormy", "storm", "thunderstorm":
		return Stormy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeather, s)
}

// UnmarshalText decodes any spelling ParseWeather accepts, so JSON and YAML
// weather feeds can be read into Sample directly.
func (w *Weather) UnmarshalText(text []byte) error {
	v, err := ParseWeather(string(text))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// Location is a point on the earth in decimal degrees.
type Location struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Sample is one day of weather. GrowthFactor is derived from the other
// fields by the location's Model and is never set on its own.
type Sample struct {
	Date         time.Time `json:"date"`
	Temperature  float64   `json:"temperature"` // °C
	Humidity     float64   `json:"humidity"`    // %
	Weather      Weather   `json:"weather"`
	WindSpeed    float64   `json:"wind_speed"` // km/h
	GrowthFactor float64   `json:"growth_factor"`
}
