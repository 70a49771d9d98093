package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/farm"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/playback"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/product"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/timeline"
)

func loadSpec(t *testing.T) *farm.Spec {
	t.Helper()
	s, err := farm.Load("../farm/testdata/farm.yaml")
	require.NoError(t, err)
	return s
}

type fixedEstimator float64

func (f fixedEstimator) Estimate(ctx context.Context, productID, crop string) (product.Estimate, error) {
	return product.Estimate{GrowthRateIncrease: float64(f)}, nil
}

type failingEstimator struct{}

func (failingEstimator) Estimate(ctx context.Context, productID, crop string) (product.Estimate, error) {
	return product.Estimate{}, errors.New("service unavailable")
}

func TestNewFromFarmFile(t *testing.T) {
	sched := playback.NewManualScheduler()
	s, err := New(context.Background(), loadSpec(t), WithScheduler(sched))
	require.NoError(t, err)
	defer s.Close()

	assert.NotEmpty(t, s.ID)
	assert.True(t, s.Validation().Valid)
	assert.Equal(t, "soybean", s.Layout.Crop)
	assert.InDelta(t, 2.5, s.Layout.AreaHa, 1e-6)
	assert.NotEmpty(t, s.Layout.Positions)

	ctrl := s.Controller()
	assert.Equal(t, 90, ctrl.TotalDays())

	apps := ctrl.Applications()
	require.Len(t, apps, 2)
	assert.Equal(t, "Stress Buster", apps[0].ProductName)
	assert.Equal(t, 0.09, apps[0].GrowthRateIncrease, "soybean override from the catalog")
	assert.Equal(t, 10, apps[0].AppliedAtDay)
	assert.Equal(t, "Nutrient Booster", apps[1].ProductName)
	assert.Equal(t, 0.08, apps[1].GrowthRateIncrease, "explicit increase wins")

	ctrl.Play(1)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, sched.Intervals())
}

func TestScheduledProductsShapeTimeline(t *testing.T) {
	spec := loadSpec(t)
	s, err := New(context.Background(), spec, WithScheduler(playback.NewManualScheduler()))
	require.NoError(t, err)

	for _, d := range s.Controller().Days() {
		want := d.BaseGrowthFactor
		if d.Index >= 10 {
			want *= 1.09
		}
		if d.Index >= 30 {
			want *= 1.08
		}
		if want > 1 {
			continue
		}
		assert.InDelta(t, want, d.GrowthFactor, 1e-9, "day %d", d.Index)
		assert.Equal(t, timeline.Classify(d.GrowthFactor), d.Stage)
	}
}

func TestNewRejectsInvalidSpec(t *testing.T) {
	spec := loadSpec(t)
	spec.Season.Horizon = -1

	_, err := New(context.Background(), spec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSpec)

	var inv *InvalidSpecError
	require.ErrorAs(t, err, &inv)
	assert.False(t, inv.Report.Valid)
}

func TestNewUnknownScheduledProduct(t *testing.T) {
	spec := loadSpec(t)
	spec.Products = []farm.ScheduledProduct{{Product: "snake-oil", Day: 3}}

	_, err := New(context.Background(), spec)
	assert.ErrorIs(t, err, product.ErrUnknownProduct)
}

func TestNewEstimatorFailure(t *testing.T) {
	_, err := New(context.Background(), loadSpec(t), WithEstimator(failingEstimator{}))
	assert.ErrorContains(t, err, "service unavailable")
}

func TestDegenerateFieldFallsBack(t *testing.T) {
	spec := loadSpec(t)
	spec.Field.Boundary = spec.Field.Boundary[:2]
	spec.Field.Hectares = 0

	s, err := New(context.Background(), spec, WithScheduler(playback.NewManualScheduler()))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s.Layout.AreaHa, 1e-9)
	assert.NotEmpty(t, s.Validation().Warnings)
}

func TestApplyAndRemove(t *testing.T) {
	spec := loadSpec(t)
	spec.Products = nil
	s, err := New(context.Background(), spec,
		WithEstimator(fixedEstimator(0.1)),
		WithScheduler(playback.NewManualScheduler()))
	require.NoError(t, err)

	before := s.Controller().Days()
	app, err := s.Apply(context.Background(), "yield-booster", 5)
	require.NoError(t, err)
	assert.Equal(t, 0.1, app.GrowthRateIncrease)
	assert.Equal(t, "Yield Booster", app.ProductName)

	removed, ok := s.Remove(app.ID)
	require.True(t, ok)
	assert.Equal(t, app.ID, removed.ID)

	after := s.Controller().Days()
	for i := range before {
		if before[i].GrowthFactor*1.1 <= 1 {
			assert.InDelta(t, before[i].GrowthFactor, after[i].GrowthFactor, 1e-9)
		}
	}

	_, ok = s.Remove(app.ID)
	assert.False(t, ok)
}

func TestApplyIncreaseUnnamedProduct(t *testing.T) {
	spec := loadSpec(t)
	spec.Products = nil
	s, err := New(context.Background(), spec, WithScheduler(playback.NewManualScheduler()))
	require.NoError(t, err)

	app, err := s.ApplyIncrease("field-trial-7", 0.2, 0)
	require.NoError(t, err)
	assert.Equal(t, "field-trial-7", app.ProductName)

	_, err = s.ApplyIncrease("", 0.2, 0)
	assert.Error(t, err)
}

func TestSyncCallbackWired(t *testing.T) {
	var got []int
	s, err := New(context.Background(), loadSpec(t),
		WithScheduler(playback.NewManualScheduler()),
		WithSync(func(d timeline.Day) { got = append(got, d.Index) }))
	require.NoError(t, err)

	got = nil
	s.Controller().SetDay(7)
	assert.Equal(t, []int{7}, got)
}

func TestBaseIntervalOverride(t *testing.T) {
	sched := playback.NewManualScheduler()
	s, err := New(context.Background(), loadSpec(t),
		WithScheduler(sched), WithBaseInterval(100*time.Millisecond))
	require.NoError(t, err)
	s.Controller().Play(1)
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, sched.Intervals())
}

func TestPlaybackSpeedFromFarmFile(t *testing.T) {
	sched := playback.NewManualScheduler()
	s, err := New(context.Background(), loadSpec(t), WithScheduler(sched))
	require.NoError(t, err)

	ctrl := s.Controller()
	assert.Equal(t, 2.0, ctrl.Speed())
	ctrl.Play(ctrl.Speed())
	assert.Equal(t, []time.Duration{250 * time.Millisecond}, sched.Intervals())
}

func TestReportJSON(t *testing.T) {
	s, err := New(context.Background(), loadSpec(t), WithScheduler(playback.NewManualScheduler()))
	require.NoError(t, err)

	r := s.Report()
	assert.Equal(t, s.ID, r.ID)
	assert.Equal(t, "Cerrado demo plot", r.Name)
	assert.Equal(t, 90, r.Timeline.Days)
	assert.Equal(t, len(s.Layout.Positions), r.Field.Plants)
	assert.Len(t, r.Applications, 2)
	assert.InDelta(t, -15.7894, r.Location.Lat, 1e-9)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "paused", decoded["playback"].(map[string]any)["state"])
}
