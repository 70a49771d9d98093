package climate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	zurich   = Location{Lat: 47.37, Lng: 8.54}
	brasilia = Location{Lat: -15.79, Lng: -47.88}
	start    = time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC)
)

func TestGenerateLengthAndDates(t *testing.T) {
	samples := Generate(zurich, start, 30)
	require.Len(t, samples, 30)
	for i, s := range samples {
		want := time.Date(2025, time.March, 1+i, 0, 0, 0, 0, time.UTC)
		assert.True(t, s.Date.Equal(want), "day %d: got %s", i, s.Date)
	}
	assert.Nil(t, Generate(zurich, start, 0))
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(brasilia, start, 60)
	b := Generate(brasilia, start, 60)
	assert.Equal(t, a, b)

	c := Generate(zurich, start, 60)
	assert.NotEqual(t, a, c)
}

func TestGenerateFieldRanges(t *testing.T) {
	for _, loc := range []Location{zurich, brasilia, {Lat: -45, Lng: 170}, {Lat: 64, Lng: -20}} {
		m := ModelFor(loc)
		for _, s := range Generate(loc, start, 365) {
			assert.GreaterOrEqual(t, s.Humidity, m.HumidityMin)
			assert.LessOrEqual(t, s.Humidity, m.HumidityMax)
			assert.GreaterOrEqual(t, s.GrowthFactor, 0.0)
			assert.LessOrEqual(t, s.GrowthFactor, 1.0)
			assert.Greater(t, s.WindSpeed, 0.0)
			assert.Contains(t, Weathers, s.Weather)
			assert.Equal(t, m.GrowthFactor(s.Temperature, s.Weather, s.Humidity), s.GrowthFactor)
		}
	}
}

func TestGeneratePersistence(t *testing.T) {
	// With persistence 0.7 the temperate model repeats yesterday's weather
	// far more often than independent draws would.
	samples := Generate(zurich, start, 365)
	repeats := 0
	for i := 1; i < len(samples); i++ {
		if samples[i].Weather == samples[i-1].Weather {
			repeats++
		}
	}
	assert.Greater(t, float64(repeats)/364, 0.6)
}

func TestSavannaSeasonality(t *testing.T) {
	wet := Generate(brasilia, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), 90)
	dry := Generate(brasilia, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), 90)
	count := func(samples []Sample, w ...Weather) int {
		n := 0
		for _, s := range samples {
			for _, x := range w {
				if s.Weather == x {
					n++
				}
			}
		}
		return n
	}
	assert.Greater(t, count(wet, Rainy, Stormy, Cloudy), count(dry, Rainy, Stormy, Cloudy))
	assert.Greater(t, count(dry, Sunny), count(wet, Sunny))
}

func TestSeasons(t *testing.T) {
	assert.Equal(t, Summer, TemperateSeason(time.July, 47))
	assert.Equal(t, Winter, TemperateSeason(time.July, -33))
	assert.Equal(t, Summer, TemperateSeason(time.January, -33))
	assert.Equal(t, Autumn, TemperateSeason(time.October, 10))
	assert.Equal(t, WetSeason, TropicalSeason(time.January, -15))
	assert.Equal(t, DrySeason, TropicalSeason(time.July, -15))
	assert.Equal(t, DrySeason, TropicalSeason(time.January, 8))
	assert.Equal(t, "wet", WetSeason.String())
}

func TestSyntheticSourceHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Synthetic{}.Samples(ctx, zurich, start, 5)
	assert.ErrorIs(t, err, context.Canceled)

	samples, err := Synthetic{}.Samples(context.Background(), zurich, start, 5)
	require.NoError(t, err)
	assert.Len(t, samples, 5)
}
