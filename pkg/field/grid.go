package field

import (
	"math"
	"math/rand"
	"sort"

	"github.com/MartinSteinmayer/start-hack-syngenta-sub000/pkg/geo"
)

const (
	// jitterFraction bounds the random offset of each plant as a fraction
	// of its spacing.
	jitterFraction = 0.1

	// MinDensity and MaxDensity bound the density knob (percent).
	MinDensity = 10.0
	MaxDensity = 300.0

	// MaxPositions caps the number of plants handed to the renderer.
	MaxPositions = 200_000
)

// ditherSize is the side of the ordered-dither tile used to thin the
// lattice.
const ditherSize = 8

// dither is the 8x8 Bayer matrix: every prefix of its levels is spread
// evenly over the tile.
var dither = bayer(ditherSize)

func bayer(n int) [][]int {
	m := [][]int{{0}}
	for size := 1; size < n; size *= 2 {
		next := make([][]int, size*2)
		for i := range next {
			next[i] = make([]int, size*2)
		}
		for i := 0; i < size; i++ {
			for j := 0; j < size; j++ {
				v := 4 * m[i][j]
				next[i][j] = v
				next[i+size][j+size] = v + 1
				next[i][j+size] = v + 2
				next[i+size][j] = v + 3
			}
		}
		m = next
	}
	return m
}

// ClampDensity bounds densityPercent into [MinDensity, MaxDensity]. A
// non-positive value means "unspecified" and maps to 100.
func ClampDensity(densityPercent float64) float64 {
	if densityPercent <= 0 {
		return 100
	}
	return math.Max(MinDensity, math.Min(MaxDensity, densityPercent))
}

// ScaledSpacing returns the crop spacing adjusted for density: both axes are
// divided by sqrt(density/100), so lower density means wider spacing.
func ScaledSpacing(crop string, densityPercent float64) Spacing {
	s := SpacingFor(crop)
	k := math.Sqrt(ClampDensity(densityPercent) / 100)
	return Spacing{Row: s.Row / k, InRow: s.InRow / k}
}

// candidate is a jittered lattice node inside the polygon.
type candidate struct {
	pt       geo.Point2D
	priority float64
}

// GridPositions plants the polygon at the crop's spacing scaled for
// density.
//
// Plants are drawn from one axis-aligned lattice at MaxDensity spacing,
// anchored half a spacing inside the bounding box. Each node is jittered by
// at most 10% of that spacing and kept only if it falls inside the polygon
// (even-odd ray casting). Each node carries a priority from an 8x8 ordered
// dither plus a seeded tie-break; a density keeps the nodes whose priority
// is below density/MaxDensity. The mean spacing is therefore
// ScaledSpacing(crop, density), and the plants at a higher density are a
// superset of those at a lower one.
//
// Above MaxPositions the lowest-priority nodes are kept, which spreads the
// cap evenly over the field. Equal arguments give equal output. For a
// valid polygon the result is never empty: the lowest-priority inside node
// is kept, or the centroid of the largest ear-clipped triangle if no node
// lands inside.
func GridPositions(p geo.Polygon, crop string, densityPercent float64, seed int64) []geo.Point2D {
	if p.IsDegenerate() {
		return nil
	}
	sp := ScaledSpacing(crop, MaxDensity)
	threshold := ClampDensity(densityPercent) / MaxDensity
	rng := rand.New(rand.NewSource(seed))
	minPt, maxPt := p.BoundingBox()

	var kept []candidate
	var first *candidate
	levels := float64(ditherSize * ditherSize)
	for ix := 0; ; ix++ {
		x := minPt.X + (float64(ix)+0.5)*sp.Row
		if x > maxPt.X {
			break
		}
		for iz := 0; ; iz++ {
			z := minPt.Z + (float64(iz)+0.5)*sp.InRow
			if z > maxPt.Z {
				break
			}
			c := candidate{
				pt: geo.Point2D{
					X: x + (rng.Float64()*2-1)*jitterFraction*sp.Row,
					Z: z + (rng.Float64()*2-1)*jitterFraction*sp.InRow,
				},
				priority: (float64(dither[ix%ditherSize][iz%ditherSize]) + rng.Float64()) / levels,
			}
			if !p.Contains(c.pt) {
				continue
			}
			if first == nil || c.priority < first.priority {
				cc := c
				first = &cc
			}
			if c.priority < threshold {
				kept = append(kept, c)
			}
		}
	}

	switch {
	case len(kept) == 0 && first != nil:
		return []geo.Point2D{first.pt}
	case len(kept) == 0:
		if tri, ok := geo.LargestTriangle(geo.EarClip(p)); ok {
			return []geo.Point2D{tri.Centroid()}
		}
		return nil
	}

	if len(kept) > MaxPositions {
		kept = lowestPriority(kept, MaxPositions)
	}
	positions := make([]geo.Point2D, len(kept))
	for i, c := range kept {
		positions[i] = c.pt
	}
	return positions
}

// lowestPriority keeps the n lowest-priority candidates in lattice order.
func lowestPriority(cs []candidate, n int) []candidate {
	order := make([]int, len(cs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return cs[order[a]].priority < cs[order[b]].priority
	})
	order = order[:n]
	sort.Ints(order)
	out := make([]candidate, n)
	for i, j := range order {
		out[i] = cs[j]
	}
	return out
}
