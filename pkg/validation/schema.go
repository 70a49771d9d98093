package validation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/farm"
)

// Bounds checked at the schema level. Values outside the soft bounds are
// clamped downstream and only produce warnings.
const (
	MaxHorizon  = 3650
	minDensity  = 10.0
	maxDensity  = 300.0
	minIncrease = -0.9
	maxSpeed    = 64.0
)

// ValidateSchema performs Level 1 (schema) validation on a parsed farm spec.
// It checks structural correctness before any field or timeline is built.
func ValidateSchema(s *farm.Spec) *Report {
	r := NewReport()

	validateLocation(s, r)
	validateField(s, r)
	validateCrop(s, r)
	validateSeason(s, r)
	validatePlayback(s, r)
	validateProducts(s, r)

	return r
}

func validateLocation(s *farm.Spec, r *Report) {
	if s.Location.Lat < -90 || s.Location.Lat > 90 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("latitude %.4f is outside [-90, 90]", s.Location.Lat),
			Path:        "location.lat",
			ActualValue: s.Location.Lat,
			Expected:    "-90..90",
		})
	}
	if s.Location.Lng < -180 || s.Location.Lng > 180 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("longitude %.4f is outside [-180, 180]", s.Location.Lng),
			Path:        "location.lng",
			ActualValue: s.Location.Lng,
			Expected:    "-180..180",
		})
	}
}

func validateField(s *farm.Spec, r *Report) {
	f := s.Field

	for i, ll := range f.Boundary {
		if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("field.boundary[%d] is not a valid coordinate", i),
				Path:        fmt.Sprintf("field.boundary[%d]", i),
				ActualValue: fmt.Sprintf("%.6f,%.6f", ll.Lat, ll.Lng),
			})
		}
	}

	if len(f.Boundary) > 0 && len(f.Points) > 0 {
		r.AddWarning(Result{
			Level:   LevelSchema,
			Message: "both field.boundary and field.points are set; points take precedence",
			Path:    "field",
		})
	}

	if s.Polygon().IsDegenerate() {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     "field outline is missing or degenerate; the default square will be used",
			Path:        "field.boundary",
			Expected:    ">= 3 non-collinear vertices",
			Suggestions: []string{"Draw at least three distinct boundary points"},
		})
	}

	if f.Hectares < 0 || math.IsNaN(f.Hectares) || math.IsInf(f.Hectares, 0) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "field.hectares must be a finite, non-negative number",
			Path:        "field.hectares",
			ActualValue: f.Hectares,
			Expected:    ">= 0",
		})
	}
}

func validateCrop(s *farm.Spec, r *Report) {
	d := s.Crop.Density
	if d < 0 || math.IsNaN(d) {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "crop.density must be positive",
			Path:        "crop.density",
			ActualValue: d,
			Expected:    "> 0",
		})
		return
	}
	if d < minDensity || d > maxDensity {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("crop.density %.0f%% will be clamped to %.0f-%.0f%%", d, minDensity, maxDensity),
			Path:        "crop.density",
			ActualValue: d,
			Expected:    fmt.Sprintf("%.0f-%.0f", minDensity, maxDensity),
		})
	}
}

func validateSeason(s *farm.Spec, r *Report) {
	if _, err := s.StartDate(); err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     err.Error(),
			Path:        "season.start_date",
			ActualValue: s.Season.StartDate,
			Expected:    time.DateOnly,
		})
	}
	if s.Season.Horizon < 1 || s.Season.Horizon > MaxHorizon {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("season.horizon %d is outside valid range (1-%d days)", s.Season.Horizon, MaxHorizon),
			Path:        "season.horizon",
			ActualValue: s.Season.Horizon,
			Expected:    fmt.Sprintf("1-%d", MaxHorizon),
		})
	}
}

func validatePlayback(s *farm.Spec, r *Report) {
	if _, err := s.BaseInterval(); err != nil {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     err.Error(),
			Path:        "playback.base_interval",
			ActualValue: s.Playback.BaseInterval,
			Expected:    "positive duration, e.g. 500ms",
		})
	}
	if sp := s.Playback.Speed; sp <= 0 || sp > maxSpeed {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("playback.speed %.2f will be clamped", sp),
			Path:        "playback.speed",
			ActualValue: sp,
			Expected:    fmt.Sprintf("(0, %.0f]", maxSpeed),
		})
	}
}

func validateProducts(s *farm.Spec, r *Report) {
	for i, p := range s.Products {
		path := fmt.Sprintf("products[%d]", i)
		if strings.TrimSpace(p.Product) == "" {
			r.AddError(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("%s: product id is required", path),
				Path:    path + ".product",
			})
		}
		if p.Day < 0 || p.Day >= s.Season.Horizon {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("%s: day %d is outside the season and will be clamped", path, p.Day),
				Path:        path + ".day",
				ActualValue: p.Day,
				Expected:    fmt.Sprintf("0-%d", s.Season.Horizon-1),
			})
		}
		if p.Increase != nil {
			inc := *p.Increase
			if math.IsNaN(inc) || math.IsInf(inc, 0) || inc < minIncrease {
				r.AddError(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("%s: increase %.3f is outside valid range", path, inc),
					Path:        path + ".increase",
					ActualValue: inc,
					Expected:    fmt.Sprintf("finite, >= %.1f", minIncrease),
				})
			}
		}
	}
}
