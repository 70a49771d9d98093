package geo

import "math"

// Triangle is a single mesh face of a triangulated field outline.
type Triangle struct {
	A Point2D `json:"a"`
	B Point2D `json:"b"`
	C Point2D `json:"c"`
}

// Area returns the unsigned area of the triangle.
func (t Triangle) Area() float64 {
	return math.Abs(cross3(t.A, t.B, t.C)) / 2
}

// Centroid returns the mean of the three corners. It always lies inside
// the triangle.
func (t Triangle) Centroid() Point2D {
	return t.A.Add(t.B).Add(t.C).Scale(1.0 / 3)
}

// contains reports whether pt lies inside or on the boundary of the
// counterclockwise triangle t.
func (t Triangle) contains(pt Point2D) bool {
	return cross3(t.A, t.B, pt) >= 0 &&
		cross3(t.B, t.C, pt) >= 0 &&
		cross3(t.C, t.A, pt) >= 0
}

// Triangulate returns a fan triangulation from vertex 0: (v0, vi, vi+1).
//
// The fan is only correct for convex outlines; a concave polygon produces
// triangles that extend outside it. Use EarClip for arbitrary simple
// polygons.
func Triangulate(p Polygon) []Triangle {
	n := len(p.Vertices)
	if n < 3 {
		return nil
	}
	tris := make([]Triangle, 0, n-2)
	for i := 1; i < n-1; i++ {
		tris = append(tris, Triangle{p.Vertices[0], p.Vertices[i], p.Vertices[i+1]})
	}
	return tris
}

// EarClip triangulates a simple polygon, convex or concave, by repeatedly
// removing ears. Output triangles are counterclockwise. If no ear can be
// found (self-intersecting or collinear remainder) the rest is fanned.
func EarClip(p Polygon) []Triangle {
	if p.IsEmpty() {
		return nil
	}
	p = p.EnsureCCW()

	idx := make([]int, len(p.Vertices))
	for i := range idx {
		idx[i] = i
	}
	tris := make([]Triangle, 0, len(idx)-2)

	for len(idx) > 3 {
		ear := findEar(p.Vertices, idx)
		if ear < 0 {
			rest := make([]Point2D, len(idx))
			for i, vi := range idx {
				rest[i] = p.Vertices[vi]
			}
			return append(tris, Triangulate(Polygon{Vertices: rest})...)
		}
		n := len(idx)
		prev, next := idx[(ear+n-1)%n], idx[(ear+1)%n]
		tris = append(tris, Triangle{p.Vertices[prev], p.Vertices[idx[ear]], p.Vertices[next]})
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	return append(tris, Triangle{p.Vertices[idx[0]], p.Vertices[idx[1]], p.Vertices[idx[2]]})
}

// findEar returns the position in idx of a clippable ear, or -1.
func findEar(v []Point2D, idx []int) int {
	n := len(idx)
	for i := 0; i < n; i++ {
		a, b, c := v[idx[(i+n-1)%n]], v[idx[i]], v[idx[(i+1)%n]]
		if cross3(a, b, c) <= 0 {
			continue // reflex or collinear
		}
		t := Triangle{a, b, c}
		empty := true
		for j := 0; j < n; j++ {
			if j == i || j == (i+n-1)%n || j == (i+1)%n {
				continue
			}
			q := v[idx[j]]
			if q == a || q == b || q == c {
				continue
			}
			if t.contains(q) {
				empty = false
				break
			}
		}
		if empty {
			return i
		}
	}
	return -1
}

// LargestTriangle returns the triangle with the greatest area, and false if
// tris is empty.
func LargestTriangle(tris []Triangle) (Triangle, bool) {
	if len(tris) == 0 {
		return Triangle{}, false
	}
	best := tris[0]
	for _, t := range tris[1:] {
		if t.Area() > best.Area() {
			best = t
		}
	}
	return best, true
}
