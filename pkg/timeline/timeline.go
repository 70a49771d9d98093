package timeline

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/climate"
)

// DefaultHorizon is the number of days simulated when none is given.
const DefaultHorizon = 120

// ErrIncomplete means the weather source returned fewer days than the
// horizon. The timeline is built eagerly, so this is a construction bug in
// the source rather than a condition to work around.
var ErrIncomplete = errors.New("incomplete weather data")

// Day is one simulated day. Only GrowthFactor and Stage change after
// construction, and only through Timeline.Rescale.
type Day struct {
	Index       int             `json:"index"`
	Date        time.Time       `json:"date"`
	Temperature float64         `json:"temperature"`
	Humidity    float64         `json:"humidity"`
	Weather     climate.Weather `json:"weather"`
	WindSpeed   float64         `json:"wind_speed"`

	GrowthFactor float64 `json:"growth_factor"`
	Stage        Stage   `json:"stage"`

	// BaseGrowthFactor is the climate-derived value before any product.
	BaseGrowthFactor float64 `json:"base_growth_factor"`

	Render RenderSettings `json:"render"`
}

// Timeline is the fixed-length sequence of simulated days for one crop.
// Its days are an arena indexed by day number; readers get copies.
type Timeline struct {
	crop     string
	location climate.Location
	model    string
	classify Classifier
	days     []Day
}

type options struct {
	source   climate.Source
	classify Classifier
}

// Option configures Build.
type Option func(*options)

// WithSource replaces the synthetic weather generator.
func WithSource(src climate.Source) Option {
	return func(o *options) { o.source = src }
}

// WithClassifier replaces the default stage thresholds.
func WithClassifier(c Classifier) Option {
	return func(o *options) {
		if c != nil {
			o.classify = c
		}
	}
}

// Build creates a timeline of horizon days starting at start. Every day is
// populated before Build returns. A non-positive horizon uses
// DefaultHorizon.
func Build(ctx context.Context, crop string, loc climate.Location, start time.Time, horizon int, opts ...Option) (*Timeline, error) {
	o := options{source: climate.Synthetic{}, classify: Classify}
	for _, opt := range opts {
		opt(&o)
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	samples, err := o.source.Samples(ctx, loc, start, horizon)
	if err != nil {
		return nil, fmt.Errorf("fetching weather: %w", err)
	}
	if len(samples) < horizon {
		return nil, fmt.Errorf("%w: got %d of %d days", ErrIncomplete, len(samples), horizon)
	}

	model := climate.ModelFor(loc)
	tl := &Timeline{
		crop:     crop,
		location: loc,
		model:    model.Name,
		classify: o.classify,
		days:     make([]Day, horizon),
	}
	for i := 0; i < horizon; i++ {
		s := samples[i]
		gf := model.GrowthFactor(s.Temperature, s.Weather, s.Humidity)
		tl.days[i] = Day{
			Index:            i,
			Date:             climate.Day(s.Date),
			Temperature:      s.Temperature,
			Humidity:         s.Humidity,
			Weather:          s.Weather,
			WindSpeed:        s.WindSpeed,
			GrowthFactor:     gf,
			BaseGrowthFactor: gf,
			Stage:            o.classify(gf),
			Render:           RenderFor(s.Weather),
		}
	}
	return tl, nil
}

// FromDays builds a timeline from prepared days, such as a replayed
// session. Indices are renumbered, growth factors clamped to [0,1] and
// stages reclassified; render settings follow the weather.
func FromDays(crop string, loc climate.Location, days []Day, opts ...Option) (*Timeline, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no days", ErrIncomplete)
	}
	o := options{classify: Classify}
	for _, opt := range opts {
		opt(&o)
	}
	tl := &Timeline{
		crop:     crop,
		location: loc,
		model:    climate.ModelFor(loc).Name,
		classify: o.classify,
		days:     make([]Day, len(days)),
	}
	for i, d := range days {
		d.Index = i
		d.GrowthFactor = math.Max(0, math.Min(1, d.GrowthFactor))
		d.BaseGrowthFactor = d.GrowthFactor
		d.Stage = o.classify(d.GrowthFactor)
		d.Render = RenderFor(d.Weather)
		tl.days[i] = d
	}
	return tl, nil
}

// Model returns the name of the climate model in use.
func (t *Timeline) Model() string { return t.model }

// Len returns the horizon in days.
func (t *Timeline) Len() int { return len(t.days) }

// Clamp bounds i into [0, Len()).
func (t *Timeline) Clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(t.days) {
		return len(t.days) - 1
	}
	return i
}

// Day returns a copy of day i, clamped into range.
func (t *Timeline) Day(i int) Day {
	return t.days[t.Clamp(i)]
}

// Days returns a copy of every day.
func (t *Timeline) Days() []Day {
	out := make([]Day, len(t.days))
	copy(out, t.days)
	return out
}

// Rescale multiplies the growth factor of every day at index >= from by
// factor, clamps it to [0,1] and reclassifies the stage. It returns the
// index of the last day capped at 1, or -1 if none was.
func (t *Timeline) Rescale(from int, factor float64) (lastSaturated int) {
	lastSaturated = -1
	for i := t.Clamp(from); i < len(t.days); i++ {
		d := &t.days[i]
		gf := d.GrowthFactor * factor
		if gf > 1 {
			gf = 1
			lastSaturated = i
		}
		d.GrowthFactor = math.Max(0, gf)
		d.Stage = t.classify(d.GrowthFactor)
	}
	return lastSaturated
}

// Summary aggregates the current state of the timeline.
type Summary struct {
	Crop             string           `json:"crop"`
	Location         climate.Location `json:"location"`
	Model            string           `json:"model"`
	Days             int              `json:"days"`
	Start            time.Time        `json:"start"`
	End              time.Time        `json:"end"`
	MeanGrowthFactor float64          `json:"mean_growth_factor"`
	MeanBaseFactor   float64          `json:"mean_base_growth_factor"`
	StageDays        map[Stage]int    `json:"stage_days"`
	PeakStage        Stage            `json:"peak_stage"`
	FirstMatureDay   int              `json:"first_mature_day"` // -1 if never
}

// Summary returns stage counts and mean growth factors.
func (t *Timeline) Summary() Summary {
	s := Summary{
		Crop:           t.crop,
		Location:       t.location,
		Model:          t.model,
		Days:           len(t.days),
		StageDays:      make(map[Stage]int, len(Stages)),
		FirstMatureDay: -1,
	}
	if len(t.days) == 0 {
		return s
	}
	s.Start = t.days[0].Date
	s.End = t.days[len(t.days)-1].Date
	for _, d := range t.days {
		s.MeanGrowthFactor += d.GrowthFactor
		s.MeanBaseFactor += d.BaseGrowthFactor
		s.StageDays[d.Stage]++
		if d.Stage.Rank() > s.PeakStage.Rank() {
			s.PeakStage = d.Stage
		}
		if d.Stage == Mature && s.FirstMatureDay < 0 {
			s.FirstMatureDay = d.Index
		}
	}
	n := float64(len(t.days))
	s.MeanGrowthFactor /= n
	s.MeanBaseFactor /= n
	return s
}
