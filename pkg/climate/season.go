package climate

import "time"

// Season is a climatic period of the year.
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
	WetSeason
	DrySeason
)

func (s Season) String() string {
	switch s {
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Autumn:
		return "autumn"
	case Winter:
		return "winter"
	case WetSeason:
		return "wet"
	case DrySeason:
		return "dry"
	default:
		return "unknown"
	}
}

// TemperateSeason returns the meteorological season for month at the
// given latitude. The southern hemisphere is shifted by six months.
func TemperateSeason(month time.Month, lat float64) Season {
	m := int(month)
	if lat < 0 {
		m = (m+5)%12 + 1
	}
	switch m {
	case 12, 1, 2:
		return Winter
	case 3, 4, 5:
		return Spring
	case 6, 7, 8:
		return Summer
	default:
		return Autumn
	}
}

// TropicalSeason returns the wet or dry season. South of the equator the
// rains run October to April; north of it the pattern is mirrored.
func TropicalSeason(month time.Month, lat float64) Season {
	wet := month >= time.October || month <= time.April
	if lat > 0 {
		wet = !wet
	}
	if wet {
		return WetSeason
	}
	return DrySeason
}

// seasonProfile holds the draw parameters for one season.
type seasonProfile struct {
	tempMin, tempMax float64
	humidityBase     float64
	weights          [5]float64 // indexed like Weathers
}

var seasonProfiles = map[Season]seasonProfile{
	Spring:    {tempMin: 9, tempMax: 20, humidityBase: 62, weights: [5]float64{0.30, 0.28, 0.20, 0.18, 0.04}},
	Summer:    {tempMin: 18, tempMax: 31, humidityBase: 55, weights: [5]float64{0.45, 0.25, 0.12, 0.11, 0.07}},
	Autumn:    {tempMin: 7, tempMax: 18, humidityBase: 68, weights: [5]float64{0.22, 0.25, 0.28, 0.21, 0.04}},
	Winter:    {tempMin: -3, tempMax: 8, humidityBase: 75, weights: [5]float64{0.18, 0.20, 0.35, 0.24, 0.03}},
	WetSeason: {tempMin: 22, tempMax: 30, humidityBase: 76, weights: [5]float64{0.14, 0.20, 0.26, 0.30, 0.10}},
	DrySeason: {tempMin: 18, tempMax: 33, humidityBase: 45, weights: [5]float64{0.60, 0.25, 0.10, 0.04, 0.01}},
}

// weatherEffect is the per-condition adjustment applied on top of the
// season draw.
type weatherEffect struct {
	tempOffset     float64
	humidityOffset float64
	windScale      float64
}

var weatherEffects = map[Weather]weatherEffect{
	Sunny:        {tempOffset: 2.0, humidityOffset: -10, windScale: 1.0},
	PartlyCloudy: {tempOffset: 0.5, humidityOffset: -3, windScale: 1.1},
	Cloudy:       {tempOffset: -1.0, humidityOffset: 5, windScale: 1.3},
	Rainy:        {tempOffset: -2.5, humidityOffset: 18, windScale: 1.6},
	Stormy:       {tempOffset: -4.0, humidityOffset: 22, windScale: 2.8},
}
