package validation

import (
	"math"
	"testing"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/climate"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/farm"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/geo"
)

func validSpec() *farm.Spec {
	inc := 0.1
	return &farm.Spec{
		Name:     "test plot",
		Location: climate.Location{Lat: -15.79, Lng: -47.88},
		Field: farm.FieldDef{
			Boundary: []geo.LatLng{
				{Lat: -15.7900, Lng: -47.8800},
				{Lat: -15.7900, Lng: -47.8785},
				{Lat: -15.7888, Lng: -47.8785},
			},
			Hectares: 2,
		},
		Crop:     farm.CropDef{Type: "corn", Density: 100},
		Season:   farm.SeasonDef{StartDate: "2025-11-03", Horizon: 120},
		Playback: farm.PlaybackDef{BaseInterval: "1s", Speed: 1},
		Products: []farm.ScheduledProduct{
			{Product: "stress-buster", Day: 10},
			{Product: "nutrient-booster", Day: 40, Increase: &inc},
		},
	}
}

func TestValidateSchemaValid(t *testing.T) {
	r := ValidateSchema(validSpec())
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
}

func TestValidateSchemaLatitude(t *testing.T) {
	s := validSpec()
	s.Location.Lat = 95
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid report for latitude 95")
	}
	assertHasError(t, r, "location.lat")
}

func TestValidateSchemaBadBoundaryPoint(t *testing.T) {
	s := validSpec()
	s.Field.Boundary[1].Lng = 200
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid report for longitude 200")
	}
	assertHasError(t, r, "field.boundary[1]")
}

func TestValidateSchemaDegenerateBoundary(t *testing.T) {
	s := validSpec()
	s.Field.Boundary = s.Field.Boundary[:2]
	r := ValidateSchema(s)
	if !r.Valid {
		t.Error("degenerate boundary should only warn")
	}
	assertHasWarning(t, r, "field.boundary")
}

func TestValidateSchemaPointsAndBoundary(t *testing.T) {
	s := validSpec()
	s.Field.Points = []geo.Point2D{{X: 0, Z: 0}, {X: 50, Z: 0}, {X: 0, Z: 50}}
	r := ValidateSchema(s)
	assertHasWarning(t, r, "field")
}

func TestValidateSchemaNegativeHectares(t *testing.T) {
	s := validSpec()
	s.Field.Hectares = -1
	r := ValidateSchema(s)
	assertHasError(t, r, "field.hectares")
}

func TestValidateSchemaInfiniteHectares(t *testing.T) {
	s := validSpec()
	s.Field.Hectares = math.Inf(1)
	r := ValidateSchema(s)
	assertHasError(t, r, "field.hectares")
}

func TestValidateSchemaParsedInfiniteHectares(t *testing.T) {
	s, err := farm.Parse([]byte("name: inf\nfield:\n  hectares: .inf\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	assertHasError(t, ValidateSchema(s), "field.hectares")
}

func TestValidateSchemaDensity(t *testing.T) {
	s := validSpec()
	s.Crop.Density = 500
	r := ValidateSchema(s)
	if !r.Valid {
		t.Error("out-of-range density should only warn")
	}
	assertHasWarning(t, r, "crop.density")

	s.Crop.Density = -5
	r = ValidateSchema(s)
	assertHasError(t, r, "crop.density")
}

func TestValidateSchemaStartDate(t *testing.T) {
	s := validSpec()
	s.Season.StartDate = "next tuesday"
	r := ValidateSchema(s)
	assertHasError(t, r, "season.start_date")
}

func TestValidateSchemaHorizon(t *testing.T) {
	for _, h := range []int{0, -3, MaxHorizon + 1} {
		s := validSpec()
		s.Season.Horizon = h
		r := ValidateSchema(s)
		if r.Valid {
			t.Errorf("expected invalid for horizon %d", h)
		}
		assertHasError(t, r, "season.horizon")
	}
}

func TestValidateSchemaPlayback(t *testing.T) {
	s := validSpec()
	s.Playback.BaseInterval = "soon"
	s.Playback.Speed = 100
	r := ValidateSchema(s)
	assertHasError(t, r, "playback.base_interval")
	assertHasWarning(t, r, "playback.speed")
}

func TestValidateSchemaProducts(t *testing.T) {
	s := validSpec()
	bad := -2.0
	s.Products = append(s.Products,
		farm.ScheduledProduct{Product: " ", Day: 5},
		farm.ScheduledProduct{Product: "late", Day: 500},
		farm.ScheduledProduct{Product: "huge", Day: 1, Increase: &bad},
	)
	r := ValidateSchema(s)
	if r.Valid {
		t.Error("expected invalid report")
	}
	assertHasError(t, r, "products[2].product")
	assertHasWarning(t, r, "products[3].day")
	assertHasError(t, r, "products[4].increase")
}

func TestValidateSchemaLargeIncreaseAllowed(t *testing.T) {
	s := validSpec()
	big := 25.0
	s.Products = []farm.ScheduledProduct{{Product: "huge", Day: 1, Increase: &big}}
	r := ValidateSchema(s)
	for _, e := range r.Errors {
		if e.Path == "products[0].increase" {
			t.Errorf("unexpected error: %s", e.Message)
		}
	}
}

func TestValidateSchemaLoadedFile(t *testing.T) {
	s, err := farm.Load("../farm/testdata/farm.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	r := ValidateSchema(s)
	if !r.Valid {
		t.Errorf("expected valid report, got %v", r.Errors)
	}
}

func assertHasError(t *testing.T, r *Report, path string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.Path == path {
			return
		}
	}
	t.Errorf("expected error with path %q, got errors: %v", path, r.Errors)
}

func assertHasWarning(t *testing.T, r *Report, path string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Path == path {
			return
		}
	}
	t.Errorf("expected warning with path %q, got warnings: %v", path, r.Warnings)
}
