package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/geo"
)

func TestBuildScalesAndPlaces(t *testing.T) {
	l, report := Build(Request{Boundary: lShape(), Hectares: 2, Crop: "Corn", Density: 100, Seed: 1})
	require.True(t, report.Valid)
	assert.InDelta(t, 2.0, l.AreaHa, 1e-6)
	assert.Equal(t, "corn", l.Crop)
	assert.NotEmpty(t, l.Positions)
	assert.Len(t, l.Triangles, lShape().Len()-2)
	for _, pt := range l.Positions {
		assert.True(t, l.Polygon.Contains(pt))
	}
	assert.Empty(t, report.Warnings)
}

func TestBuildDegenerateBoundary(t *testing.T) {
	l, report := Build(Request{Boundary: geo.NewPolygon(geo.Pt(0, 0)), Hectares: 1, Crop: "wheat"})
	assert.True(t, report.Valid, "degenerate boundary is recovered, not an error")
	require.Len(t, report.Warnings, 1)
	assert.InDelta(t, 1.0, l.AreaHa, 1e-6)
	assert.NotEmpty(t, l.Positions)
}

func TestBuildReportsClamp(t *testing.T) {
	l, report := Build(Request{Boundary: rect(10, 10), Hectares: 1000, Crop: "sugarcane", Density: 10})
	assert.InDelta(t, geo.MaxFieldDimension, l.Polygon.Extent(), 1e-6)
	found := false
	for _, r := range report.Info {
		if r.Path == "field.hectares" {
			found = true
		}
	}
	assert.True(t, found, "expected clamp info entry")
}

func TestBuildUnknownCropWarns(t *testing.T) {
	_, report := Build(Request{Boundary: rect(50, 50), Hectares: 0.25, Crop: "quinoa"})
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "crop.type", report.Warnings[0].Path)
	assert.Contains(t, report.Warnings[0].Suggestions[0], "soybean")
}

func TestCropsSorted(t *testing.T) {
	crops := Crops()
	assert.IsIncreasing(t, crops)
	assert.Contains(t, crops, "corn")
}
