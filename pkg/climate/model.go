package climate

import "math"

// Weights blend the three suitability scores of a growth model. They sum to 1.
type Weights struct {
	Temperature float64 `json:"temperature"`
	Sunlight    float64 `json:"sunlight"`
	Moisture    float64 `json:"moisture"`
}

// Model is a seasonal weather regime together with its growth response.
type Model struct {
	Name string `json:"name"`

	OptimalTemp   float64 `json:"optimal_temp"`   // °C with a temperature score of 1
	TempTolerance float64 `json:"temp_tolerance"` // °C from optimum where the score reaches 0

	HumidityLow  float64 `json:"humidity_low"`  // lower edge of the optimal band
	HumidityHigh float64 `json:"humidity_high"` // upper edge of the optimal band
	Saturation   float64 `json:"saturation"`    // above this, excess moisture is penalised hard

	HumidityMin float64 `json:"humidity_min"` // generator clamp
	HumidityMax float64 `json:"humidity_max"`

	Weights Weights `json:"weights"`

	// Persistence is the probability that a day repeats the previous day's
	// weather instead of drawing a fresh one.
	Persistence float64 `json:"persistence"`

	tropical bool
}

// Temperate is the generic latitude-driven model. Temperature dominates
// growth.
var Temperate = Model{
	Name:          "temperate",
	OptimalTemp:   24,
	TempTolerance: 16,
	HumidityLow:   50,
	HumidityHigh:  70,
	Saturation:    85,
	HumidityMin:   10,
	HumidityMax:   100,
	Weights:       Weights{Temperature: 0.5, Sunlight: 0.3, Moisture: 0.2},
	Persistence:   0.7,
}

// Savanna is the tropical wet/dry model used inside the savanna box.
// Moisture dominates growth, reflecting drought sensitivity.
var Savanna = Model{
	Name:          "savanna",
	OptimalTemp:   27,
	TempTolerance: 13,
	HumidityLow:   55,
	HumidityHigh:  80,
	Saturation:    90,
	HumidityMin:   15,
	HumidityMax:   95,
	Weights:       Weights{Temperature: 0.3, Sunlight: 0.25, Moisture: 0.45},
	tropical:      true,
}

// Savanna bounding box in decimal degrees (a Cerrado-like region).
const (
	savannaLatMin = -24.0
	savannaLatMax = -2.0
	savannaLngMin = -60.0
	savannaLngMax = -41.0
)

// ModelFor selects the model for a location.
func ModelFor(loc Location) Model {
	if loc.Lat >= savannaLatMin && loc.Lat <= savannaLatMax &&
		loc.Lng >= savannaLngMin && loc.Lng <= savannaLngMax {
		return Savanna
	}
	return Temperate
}

// sunlight is the sunlight suitability of each weather condition.
var sunlight = map[Weather]float64{
	Sunny:        1.0,
	PartlyCloudy: 0.85,
	Cloudy:       0.6,
	Rainy:        0.45,
	Stormy:       0.2,
}

// SunlightScore returns the fixed sunlight suitability of w. Unknown
// conditions score as cloudy.
func SunlightScore(w Weather) float64 {
	if s, ok := sunlight[w]; ok {
		return s
	}
	return sunlight[Cloudy]
}

// TemperatureScore peaks at OptimalTemp and falls off linearly.
func (m Model) TemperatureScore(temp float64) float64 {
	return clamp01(1 - math.Abs(temp-m.OptimalTemp)/m.TempTolerance)
}

// MoistureScore is 1 inside the optimal humidity band, rises linearly
// below it, and decays above it with a steeper penalty past Saturation.
func (m Model) MoistureScore(humidity float64) float64 {
	switch {
	case humidity < m.HumidityLow:
		return clamp01(humidity / m.HumidityLow)
	case humidity <= m.HumidityHigh:
		return 1
	}
	score := 1 - 0.4*(humidity-m.HumidityHigh)/(100-m.HumidityHigh)
	if humidity > m.Saturation {
		score -= 0.5 * (humidity - m.Saturation) / (100 - m.Saturation)
	}
	return clamp01(score)
}

// GrowthFactor blends the temperature, sunlight and moisture scores with
// the model weights. It is pure and always in [0,1].
func (m Model) GrowthFactor(temp float64, w Weather, humidity float64) float64 {
	if math.IsNaN(temp) || math.IsNaN(humidity) {
		return 0
	}
	gf := m.Weights.Temperature*m.TemperatureScore(temp) +
		m.Weights.Sunlight*SunlightScore(w) +
		m.Weights.Moisture*m.MoistureScore(humidity)
	return clamp01(gf)
}

// GrowthFactor evaluates the temperate model. Use Model.GrowthFactor when
// the location is known.
func GrowthFactor(temp float64, w Weather, humidity float64) float64 {
	return Temperate.GrowthFactor(temp, w, humidity)
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
