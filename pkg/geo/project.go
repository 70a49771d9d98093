package geo

import "math"

// metresPerDegree is the length of one degree of latitude on a spherical earth.
const metresPerDegree = 111_320.0

// LatLng is a geographic coordinate in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Project maps geographic points onto the XZ plane with an equirectangular
// projection around origin. Accurate to well under a percent for
// field-sized areas away from the poles.
func Project(origin LatLng, pts []LatLng) Polygon {
	cosLat := math.Cos(origin.Lat * math.Pi / 180)
	out := make([]Point2D, len(pts))
	for i, ll := range pts {
		out[i] = Point2D{
			X: (ll.Lng - origin.Lng) * metresPerDegree * cosLat,
			Z: (ll.Lat - origin.Lat) * metresPerDegree,
		}
	}
	return Polygon{Vertices: out}
}

// MeanLatLng returns the average of pts. Used as the projection origin
// and as the climate location of a field boundary.
func MeanLatLng(pts []LatLng) LatLng {
	if len(pts) == 0 {
		return LatLng{}
	}
	var sum LatLng
	for _, p := range pts {
		sum.Lat += p.Lat
		sum.Lng += p.Lng
	}
	n := float64(len(pts))
	return LatLng{Lat: sum.Lat / n, Lng: sum.Lng / n}
}
