package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/geo"
)

func rect(w, h float64) geo.Polygon {
	return geo.NewPolygon(geo.Pt(0, 0), geo.Pt(w, 0), geo.Pt(w, h), geo.Pt(0, h))
}

func lShape() geo.Polygon {
	return geo.NewPolygon(
		geo.Pt(0, 0), geo.Pt(60, 0), geo.Pt(60, 20),
		geo.Pt(20, 20), geo.Pt(20, 60), geo.Pt(0, 60),
	)
}

func TestGridPositionsContained(t *testing.T) {
	for _, p := range []geo.Polygon{rect(50, 30), lShape(), geo.DefaultSquare()} {
		for _, crop := range []string{"corn", "wheat", "coffee", "unknown"} {
			positions := GridPositions(p, crop, 100, 42)
			require.NotEmpty(t, positions, "crop %s", crop)
			for _, pt := range positions {
				assert.True(t, p.Contains(pt), "position %v outside polygon", pt)
			}
		}
	}
}

func triangle() geo.Polygon {
	return geo.NewPolygon(geo.Pt(0, 0), geo.Pt(37.3, 3.1), geo.Pt(11.7, 29.9))
}

func TestGridPositionsMonotonicInDensity(t *testing.T) {
	shapes := map[string]geo.Polygon{
		"rect":     rect(80, 45),
		"triangle": triangle(),
		"l-shape":  lShape(),
	}
	for name, p := range shapes {
		prev := 0
		for d := MinDensity; d <= MaxDensity; d++ {
			n := len(GridPositions(p, "corn", d, 1))
			require.GreaterOrEqual(t, n, prev, "%s: density %.0f", name, d)
			prev = n
		}
	}
}

func TestGridPositionsDenserIsSuperset(t *testing.T) {
	sparse := GridPositions(triangle(), "soybean", 40, 7)
	dense := GridPositions(triangle(), "soybean", 41, 7)
	set := make(map[geo.Point2D]bool, len(dense))
	for _, pt := range dense {
		set[pt] = true
	}
	for _, pt := range sparse {
		assert.True(t, set[pt], "plant %v lost at higher density", pt)
	}
}

func TestGridPositionsMeanSpacing(t *testing.T) {
	sp := ScaledSpacing("corn", 100)
	want := 90 * 60 / (sp.Row * sp.InRow)
	got := float64(len(GridPositions(rect(90, 60), "corn", 100, 5)))
	assert.InEpsilon(t, want, got, 0.05)
}

func TestGridPositionsCapSpreadsOverField(t *testing.T) {
	positions := GridPositions(rect(400, 400), "wheat", 300, 1)
	require.Len(t, positions, MaxPositions)

	minX, maxX := math.Inf(1), math.Inf(-1)
	var left int
	for _, pt := range positions {
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		if pt.X < 200 {
			left++
		}
	}
	assert.Less(t, minX, 5.0)
	assert.Greater(t, maxX, 395.0)
	assert.InEpsilon(t, MaxPositions/2, left, 0.05)
}

func TestGridPositionsDeterministic(t *testing.T) {
	a := GridPositions(lShape(), "corn", 100, 9)
	b := GridPositions(lShape(), "corn", 100, 9)
	require.Equal(t, len(a), len(b))
	assert.Equal(t, a, b)
}

func TestGridPositionsJitterBounded(t *testing.T) {
	p := rect(30, 30)
	sp := ScaledSpacing("corn", MaxDensity)
	minPt, _ := p.BoundingBox()
	for _, pt := range GridPositions(p, "corn", 100, 3) {
		// Distance to the nearest lattice node must be within the jitter budget.
		gx := math.Round((pt.X-minPt.X-sp.Row/2)/sp.Row)*sp.Row + minPt.X + sp.Row/2
		gz := math.Round((pt.Z-minPt.Z-sp.InRow/2)/sp.InRow)*sp.InRow + minPt.Z + sp.InRow/2
		assert.LessOrEqual(t, math.Abs(pt.X-gx), jitterFraction*sp.Row+1e-9)
		assert.LessOrEqual(t, math.Abs(pt.Z-gz), jitterFraction*sp.InRow+1e-9)
	}
}

func TestBayerLevelsAreAPermutation(t *testing.T) {
	seen := make(map[int]bool)
	for _, row := range dither {
		for _, v := range row {
			seen[v] = true
		}
	}
	assert.Len(t, seen, ditherSize*ditherSize)
	assert.True(t, seen[0])
	assert.True(t, seen[ditherSize*ditherSize-1])
}

func TestGridPositionsThinPolygonNotEmpty(t *testing.T) {
	// A sliver narrower than any row spacing still gets one plant.
	sliver := geo.NewPolygon(geo.Pt(0, 0), geo.Pt(40, 0), geo.Pt(40, 0.3), geo.Pt(0, 0.3))
	positions := GridPositions(sliver, "coffee", 100, 1)
	require.Len(t, positions, 1)
	assert.True(t, sliver.Contains(positions[0]))
}

func TestGridPositionsDegenerate(t *testing.T) {
	assert.Empty(t, GridPositions(geo.NewPolygon(geo.Pt(0, 0), geo.Pt(1, 1)), "corn", 100, 1))
}

func TestScaledSpacing(t *testing.T) {
	base := SpacingFor("corn")
	half := ScaledSpacing("corn", 25)
	assert.InDelta(t, base.Row*2, half.Row, 1e-9)
	assert.InDelta(t, base.InRow*2, half.InRow, 1e-9)

	assert.Equal(t, 100.0, ClampDensity(0))
	assert.Equal(t, MinDensity, ClampDensity(1))
	assert.Equal(t, MaxDensity, ClampDensity(1000))
}

func TestSpacingForNormalizesName(t *testing.T) {
	assert.Equal(t, SpacingFor("wheat"), SpacingFor("  Wheat "))
	assert.Equal(t, SpacingFor(DefaultCrop), SpacingFor("quinoa"))
	assert.True(t, KnownCrop("SOYBEAN"))
	assert.False(t, KnownCrop("quinoa"))
}
