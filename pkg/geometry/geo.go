// Package geometry provides the geographic and screen-space primitives used
// throughout the application.
package geometry

import "math"

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewGeoPoint creates a new GeoPoint.
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Lat: lat, Lng: lng}
}

// MinBoundaryPoints is the smallest number of vertices that form a valid
// closed boundary.
const MinBoundaryPoints = 3

// ValidBoundary reports whether the ordered point sequence can form a closed
// boundary path.
func ValidBoundary(points []GeoPoint) bool {
	return len(points) >= MinBoundaryPoints
}

// GeoBounds is an axis-aligned bounding box in geographic coordinates.
type GeoBounds struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
}

// BoundsOf computes the geographic bounding box of a point sequence.
// Returns a zero GeoBounds for an empty sequence.
func BoundsOf(points []GeoPoint) GeoBounds {
	if len(points) == 0 {
		return GeoBounds{}
	}
	b := GeoBounds{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLng: points[0].Lng, MaxLng: points[0].Lng,
	}
	for _, p := range points[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lng < b.MinLng {
			b.MinLng = p.Lng
		}
		if p.Lng > b.MaxLng {
			b.MaxLng = p.Lng
		}
	}
	return b
}

// Center returns the midpoint of the bounds.
func (b GeoBounds) Center() GeoPoint {
	return GeoPoint{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

// GeoCentroid computes the average position of a geographic point sequence.
func GeoCentroid(points []GeoPoint) GeoPoint {
	if len(points) == 0 {
		return GeoPoint{}
	}
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(points))
	return GeoPoint{Lat: sumLat / n, Lng: sumLng / n}
}

// GeoPointInPolygon tests whether a geographic point lies inside a polygon
// using ray casting. Coordinates are treated as planar, which is adequate at
// site scale.
func GeoPointInPolygon(p GeoPoint, polygon []GeoPoint) bool {
	if len(polygon) < MinBoundaryPoints {
		return false
	}

	inside := false
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		if ((pi.Lat > p.Lat) != (pj.Lat > p.Lat)) &&
			(p.Lng < (pj.Lng-pi.Lng)*(p.Lat-pi.Lat)/(pj.Lat-pi.Lat)+pi.Lng) {
			inside = !inside
		}
	}
	return inside
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
