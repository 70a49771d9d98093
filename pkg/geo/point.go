package geo

// Point2D is a planar field coordinate. X runs east, Z runs north; the
// renderer places every point at ground level (Y = 0).
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Z float64 `json:"z" yaml:"z"`
}

// Pt is a shorthand constructor for Point2D.
func Pt(x, z float64) Point2D {
	return Point2D{X: x, Z: z}
}

// Add returns p + q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{p.X + q.X, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Z - q.Z}
}

// Scale returns p * s.
func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Z * s}
}

// ScaleAbout scales p by s relative to center.
func (p Point2D) ScaleAbout(center Point2D, s float64) Point2D {
	return p.Sub(center).Scale(s).Add(center)
}

// Cross returns the 2D cross product (z-component of 3D cross).
func (p Point2D) Cross(q Point2D) float64 {
	return p.X*q.Z - p.Z*q.X
}

// cross3 is the orientation of c relative to the directed line a→b.
// Positive when c lies to the left.
func cross3(a, b, c Point2D) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}
