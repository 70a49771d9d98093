package geo

import "math"

// degenerateArea is the area (m²) below which a polygon is treated as collapsed.
const degenerateArea = 1e-9

// Polygon is a closed field outline defined by its vertices in order.
type Polygon struct {
	Vertices []Point2D `json:"vertices" yaml:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// DefaultSquare is the substitute outline for invalid input: a 100m x 100m
// square (one hectare) centred on the origin.
func DefaultSquare() Polygon {
	return NewPolygon(Pt(-50, -50), Pt(50, -50), Pt(50, 50), Pt(-50, 50))
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// IsDegenerate reports whether the polygon cannot enclose an area, either
// because it has fewer than 3 vertices or because its vertices are collinear
// or coincident.
func (p Polygon) IsDegenerate() bool {
	return p.IsEmpty() || p.Area() < degenerateArea
}

// OrDefault returns p, or DefaultSquare when p is degenerate.
func (p Polygon) OrDefault() Polygon {
	if p.IsDegenerate() {
		return DefaultSquare()
	}
	return p
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Z
		area -= p.Vertices[j].X * p.Vertices[i].Z
	}
	return area / 2
}

// Area returns the unsigned area of the polygon in square metres.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// AreaHectares returns the unsigned area in hectares.
func (p Polygon) AreaHectares() float64 {
	return p.Area() / SquareMetresPerHectare
}

// EnsureCCW returns the polygon with vertices in counterclockwise order.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() < 0 {
		return p.Reverse()
	}
	return p
}

// Reverse returns the polygon with reversed vertex order.
func (p Polygon) Reverse() Polygon {
	n := len(p.Vertices)
	rev := make([]Point2D, n)
	for i, v := range p.Vertices {
		rev[n-1-i] = v
	}
	return Polygon{Vertices: rev}
}

// VertexMean returns the arithmetic mean of the vertices. Scaling uses this
// rather than the area centroid so the pivot is stable for degenerate shapes.
func (p Polygon) VertexMean() Point2D {
	n := len(p.Vertices)
	if n == 0 {
		return Point2D{}
	}
	sum := Point2D{}
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(n))
}

// Centroid returns the area-weighted centroid of the polygon, falling back
// to the vertex mean for degenerate input.
func (p Polygon) Centroid() Point2D {
	a := p.SignedArea()
	if math.Abs(a) < degenerateArea {
		return p.VertexMean()
	}
	n := len(p.Vertices)
	cx, cz := 0.0, 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].X*p.Vertices[j].Z - p.Vertices[j].X*p.Vertices[i].Z
		cx += (p.Vertices[i].X + p.Vertices[j].X) * cross
		cz += (p.Vertices[i].Z + p.Vertices[j].Z) * cross
	}
	f := 1.0 / (6.0 * a)
	return Point2D{cx * f, cz * f}
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (p Polygon) BoundingBox() (Point2D, Point2D) {
	if len(p.Vertices) == 0 {
		return Point2D{}, Point2D{}
	}
	minP := p.Vertices[0]
	maxP := p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		minP.X = math.Min(minP.X, v.X)
		minP.Z = math.Min(minP.Z, v.Z)
		maxP.X = math.Max(maxP.X, v.X)
		maxP.Z = math.Max(maxP.Z, v.Z)
	}
	return minP, maxP
}

// Extent returns the larger side of the bounding box.
func (p Polygon) Extent() float64 {
	minP, maxP := p.BoundingBox()
	return math.Max(maxP.X-minP.X, maxP.Z-minP.Z)
}

// Contains returns true if the point is inside the polygon using ray casting
// (even-odd rule).
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Z > pt.Z) != (vj.Z > pt.Z) &&
			pt.X < (vj.X-vi.X)*(pt.Z-vi.Z)/(vj.Z-vi.Z)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ScaleAbout returns the polygon scaled uniformly by s around center.
func (p Polygon) ScaleAbout(center Point2D, s float64) Polygon {
	out := make([]Point2D, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = v.ScaleAbout(center, s)
	}
	return Polygon{Vertices: out}
}
