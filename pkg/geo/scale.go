package geo

import "math"

// SquareMetresPerHectare converts hectares to the planar unit (m²).
const SquareMetresPerHectare = 10_000.0

// Field extent bounds in metres. They keep the rendered scene within a range
// the renderer can frame and populate with plants at interactive frame rates.
// They are visual/performance limits only: a field scaled to a large target
// area is shrunk to MaxFieldDimension and no longer has the requested area.
const (
	MinFieldDimension = 20.0
	MaxFieldDimension = 400.0
)

// ScaleToArea uniformly scales p about its vertex mean so that its area
// equals hectares, then clamps the bounding-box extent into
// [MinFieldDimension, MaxFieldDimension] with a second uniform pass about the
// same centre.
//
// Degenerate input (fewer than 3 vertices or zero area) is replaced by
// DefaultSquare before scaling. A non-positive target leaves the size
// unchanged apart from the clamp.
func ScaleToArea(p Polygon, hectares float64) Polygon {
	p = p.OrDefault()
	center := p.VertexMean()
	if hectares > 0 {
		factor := math.Sqrt(hectares * SquareMetresPerHectare / p.Area())
		p = p.ScaleAbout(center, factor)
	}
	return ClampExtent(p, center, MinFieldDimension, MaxFieldDimension)
}

// ClampExtent rescales p about center so its bounding-box extent lies in
// [minDim, maxDim]. Polygons already within bounds are returned unchanged.
func ClampExtent(p Polygon, center Point2D, minDim, maxDim float64) Polygon {
	ext := p.Extent()
	switch {
	case ext <= 0:
		return p
	case ext > maxDim:
		return p.ScaleAbout(center, maxDim/ext)
	case ext < minDim:
		return p.ScaleAbout(center, minDim/ext)
	}
	return p
}
