package climate

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"
)

// Source supplies daily weather for a location. The synthetic generator is
// the built-in implementation; a feed of observed or forecast data can be
// plugged in instead.
type Source interface {
	Samples(ctx context.Context, loc Location, start time.Time, days int) ([]Sample, error)
}

// Synthetic generates plausible weather with Generate.
type Synthetic struct{}

// Samples implements Source.
func (Synthetic) Samples(ctx context.Context, loc Location, start time.Time, days int) ([]Sample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Generate(loc, start, days), nil
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Seed derives the generator seed from a location and start date, so equal
// inputs always produce the same weather.
func Seed(loc Location, start time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%.5f|%.5f|%s", loc.Lat, loc.Lng, Day(start).Format(time.DateOnly))
	return int64(h.Sum64())
}

// Generate returns one sample per day starting at start. The savanna model
// is used inside its bounding box and the temperate model elsewhere.
func Generate(loc Location, start time.Time, days int) []Sample {
	if days <= 0 {
		return nil
	}
	model := ModelFor(loc)
	rng := rand.New(rand.NewSource(Seed(loc, start)))
	start = Day(start)

	samples := make([]Sample, 0, days)
	var prev Weather
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)

		var season Season
		if model.tropical {
			season = TropicalSeason(date.Month(), loc.Lat)
		} else {
			season = TemperateSeason(date.Month(), loc.Lat)
		}
		prof := seasonProfiles[season]

		w := drawWeather(rng, prof.weights)
		if i > 0 && model.Persistence > 0 && rng.Float64() < model.Persistence {
			w = prev
		}
		prev = w
		eff := weatherEffects[w]

		temp := prof.tempMin + rng.Float64()*(prof.tempMax-prof.tempMin)
		if !model.tropical {
			temp += latitudeShift(loc.Lat)
		}
		temp += eff.tempOffset + (rng.Float64()*2-1)*1.5

		humidity := prof.humidityBase + eff.humidityOffset + (rng.Float64()*2-1)*5
		humidity = clamp(humidity, model.HumidityMin, model.HumidityMax)

		wind := (2 + rng.Float64()*8) * eff.windScale

		samples = append(samples, Sample{
			Date:         date,
			Temperature:  round1(temp),
			Humidity:     round1(humidity),
			Weather:      w,
			WindSpeed:    round1(wind),
			GrowthFactor: model.GrowthFactor(round1(temp), w, round1(humidity)),
		})
	}
	return samples
}

// latitudeShift warms low latitudes and cools high ones relative to the
// mid-latitude season ranges.
func latitudeShift(lat float64) float64 {
	return clamp((40-math.Abs(lat))*0.25, -8, 8)
}

func drawWeather(rng *rand.Rand, weights [5]float64) Weather {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return Weathers[i]
		}
		r -= w
	}
	return Weathers[len(Weathers)-1]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
