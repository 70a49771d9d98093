package field

import (
	"fmt"
	"math"
	"strings"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/geo"
	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/validation"
)

// Request describes a field to construct.
type Request struct {
	Boundary geo.Polygon // planar outline, any scale
	Hectares float64     // target area
	Crop     string
	Density  float64 // percent, 100 = crop default spacing
	Seed     int64   // jitter seed
}

// Layout is the constructed field: the scaled outline, its mesh and the
// plant positions. It is built once per simulation and not modified.
type Layout struct {
	Polygon   geo.Polygon    `json:"polygon"`
	Triangles []geo.Triangle `json:"triangles"`
	Positions []geo.Point2D  `json:"positions"`
	Crop      string         `json:"crop"`
	Density   float64        `json:"density"`
	AreaHa    float64        `json:"area_ha"`
	Spacing   Spacing        `json:"spacing"`
}

// Build scales the boundary to the requested area, triangulates it and
// places plants. Invalid boundaries are replaced with the default square;
// the report records every substitution.
func Build(req Request) (*Layout, *validation.Report) {
	report := validation.NewReport()

	if req.Boundary.IsDegenerate() {
		report.AddWarning(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     "field boundary is degenerate; using default square",
			Path:        "field.boundary",
			ActualValue: req.Boundary.Len(),
			Expected:    ">= 3 non-collinear vertices",
		})
	}
	if !KnownCrop(req.Crop) {
		report.AddWarning(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     fmt.Sprintf("no spacing table for crop %q; using %s spacing", req.Crop, DefaultCrop),
			Path:        "crop.type",
			ActualValue: req.Crop,
			Suggestions: []string{"Known crops: " + strings.Join(Crops(), ", ")},
		})
	}

	poly := geo.ScaleToArea(req.Boundary, req.Hectares)
	if req.Hectares > 0 && !approx(poly.AreaHectares(), req.Hectares) {
		report.AddInfo(validation.Result{
			Level: validation.LevelGeometry,
			Message: fmt.Sprintf("field extent clamped to [%.0f, %.0f] m; rendered area is %.2f ha instead of %.2f ha",
				geo.MinFieldDimension, geo.MaxFieldDimension, poly.AreaHectares(), req.Hectares),
			Path: "field.hectares",
		})
	}

	density := ClampDensity(req.Density)
	positions := GridPositions(poly, req.Crop, density, req.Seed)
	if len(positions) >= MaxPositions {
		report.AddWarning(validation.Result{
			Level:       validation.LevelGeometry,
			Message:     fmt.Sprintf("plant count capped at %d", MaxPositions),
			Path:        "crop.density",
			ActualValue: density,
		})
	}

	l := &Layout{
		Polygon:   poly,
		Triangles: geo.EarClip(poly),
		Positions: positions,
		Crop:      NormalizeCrop(req.Crop),
		Density:   density,
		AreaHa:    poly.AreaHectares(),
		Spacing:   ScaledSpacing(req.Crop, density),
	}
	report.AddInfo(validation.Result{
		Level:   validation.LevelGeometry,
		Message: fmt.Sprintf("placed %d plants on %.2f ha", len(l.Positions), l.AreaHa),
	})
	return l, report
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}
