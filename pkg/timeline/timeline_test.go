package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/climate"
)

var (
	testLoc   = climate.Location{Lat: -15.79, Lng: -47.88}
	testStart = time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)
)

type shortSource struct{ n int }

func (s shortSource) Samples(_ context.Context, loc climate.Location, start time.Time, _ int) ([]climate.Sample, error) {
	return climate.Generate(loc, start, s.n), nil
}

type failingSource struct{}

func (failingSource) Samples(context.Context, climate.Location, time.Time, int) ([]climate.Sample, error) {
	return nil, errors.New("feed offline")
}

func TestBuildPopulatesEveryDay(t *testing.T) {
	tl, err := Build(context.Background(), "soybean", testLoc, testStart, 30)
	require.NoError(t, err)
	require.Equal(t, 30, tl.Len())
	assert.Equal(t, "savanna", tl.Model())

	model := climate.ModelFor(testLoc)
	for i, d := range tl.Days() {
		assert.Equal(t, i, d.Index)
		assert.True(t, d.Date.Equal(testStart.AddDate(0, 0, i)))
		assert.Equal(t, model.GrowthFactor(d.Temperature, d.Weather, d.Humidity), d.GrowthFactor)
		assert.Equal(t, d.GrowthFactor, d.BaseGrowthFactor)
		assert.Equal(t, Classify(d.GrowthFactor), d.Stage)
		assert.Equal(t, RenderFor(d.Weather), d.Render)
	}
}

func TestBuildDefaultHorizon(t *testing.T) {
	tl, err := Build(context.Background(), "corn", testLoc, testStart, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultHorizon, tl.Len())
}

func TestBuildIncompleteSource(t *testing.T) {
	_, err := Build(context.Background(), "corn", testLoc, testStart, 10, WithSource(shortSource{n: 7}))
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestBuildSourceError(t *testing.T) {
	_, err := Build(context.Background(), "corn", testLoc, testStart, 10, WithSource(failingSource{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed offline")
}

func TestBuildInjectedClassifier(t *testing.T) {
	always := func(float64) Stage { return Mature }
	tl, err := Build(context.Background(), "corn", testLoc, testStart, 5, WithClassifier(always))
	require.NoError(t, err)
	for _, d := range tl.Days() {
		assert.Equal(t, Mature, d.Stage)
	}
}

func TestDaysReturnsCopies(t *testing.T) {
	tl, err := Build(context.Background(), "corn", testLoc, testStart, 5)
	require.NoError(t, err)
	days := tl.Days()
	days[0].GrowthFactor = 42
	assert.NotEqual(t, 42.0, tl.Day(0).GrowthFactor)
}

func TestDayClampsIndex(t *testing.T) {
	tl, err := Build(context.Background(), "corn", testLoc, testStart, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, tl.Day(-3).Index)
	assert.Equal(t, 4, tl.Day(99).Index)
}

func fixedDays(gfs ...float64) []Day {
	days := make([]Day, len(gfs))
	for i, gf := range gfs {
		days[i] = Day{Date: testStart.AddDate(0, 0, i), Weather: climate.Sunny, GrowthFactor: gf}
	}
	return days
}

func TestRescaleSaturates(t *testing.T) {
	tl, err := FromDays("corn", testLoc, fixedDays(0.5, 0.95))
	require.NoError(t, err)

	assert.Equal(t, 1, tl.Rescale(1, 1.5))
	assert.Equal(t, 0.5, tl.Day(0).GrowthFactor)
	assert.Equal(t, 1.0, tl.Day(1).GrowthFactor)
	assert.Equal(t, Mature, tl.Day(1).Stage)
}

func TestRescaleReclassifiesBackward(t *testing.T) {
	tl, err := FromDays("corn", testLoc, fixedDays(0.65))
	require.NoError(t, err)
	require.Equal(t, Reproductive, tl.Day(0).Stage)

	assert.Equal(t, -1, tl.Rescale(0, 0.5))
	assert.InDelta(t, 0.325, tl.Day(0).GrowthFactor, 1e-12)
	assert.Equal(t, Vegetative, tl.Day(0).Stage)

	tl.Rescale(0, -1)
	assert.Equal(t, 0.0, tl.Day(0).GrowthFactor)
	assert.Equal(t, Seedling, tl.Day(0).Stage)
}

func TestFromDaysNormalises(t *testing.T) {
	tl, err := FromDays("wheat", testLoc, fixedDays(1.7, -0.2))
	require.NoError(t, err)
	assert.Equal(t, 1.0, tl.Day(0).GrowthFactor)
	assert.Equal(t, 0.0, tl.Day(1).GrowthFactor)
	assert.Equal(t, 1, tl.Day(1).Index)

	_, err = FromDays("wheat", testLoc, nil)
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestSummary(t *testing.T) {
	tl, err := FromDays("corn", testLoc, fixedDays(0.1, 0.5, 0.7, 0.95))
	require.NoError(t, err)
	s := tl.Summary()
	assert.Equal(t, 4, s.Days)
	assert.InDelta(t, 0.5625, s.MeanGrowthFactor, 1e-12)
	assert.Equal(t, 1, s.StageDays[Seedling])
	assert.Equal(t, 1, s.StageDays[Mature])
	assert.Equal(t, 3, s.FirstMatureDay)
	assert.Equal(t, Mature, s.PeakStage)
	assert.Equal(t, testLoc, s.Location)
	assert.True(t, s.End.Equal(testStart.AddDate(0, 0, 3)))
}

func TestSummaryPeakStage(t *testing.T) {
	tl, err := FromDays("corn", testLoc, fixedDays(0.7, 0.1, 0.3))
	require.NoError(t, err)
	assert.Equal(t, Reproductive, tl.Summary().PeakStage)

	tl.Rescale(0, 0.1)
	assert.Equal(t, Seedling, tl.Summary().PeakStage)
}
