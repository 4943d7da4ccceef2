package geometry

import (
	"math"
	"testing"
)

func TestValidBoundary(t *testing.T) {
	tests := []struct {
		name   string
		points []GeoPoint
		want   bool
	}{
		{"empty", nil, false},
		{"one point", []GeoPoint{{Lat: 1, Lng: 1}}, false},
		{"two points", []GeoPoint{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}}, false},
		{"triangle", []GeoPoint{{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 1, Lng: 3}}, true},
		{"quad", []GeoPoint{{}, {Lat: 1}, {Lat: 1, Lng: 1}, {Lng: 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidBoundary(tt.points); got != tt.want {
				t.Errorf("ValidBoundary(%d points) = %v, want %v", len(tt.points), got, tt.want)
			}
		})
	}
}

func TestGeoPointInPolygon(t *testing.T) {
	square := []GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 10, Lng: 10},
		{Lat: 10, Lng: 0},
	}

	tests := []struct {
		name string
		p    GeoPoint
		want bool
	}{
		{"center", GeoPoint{Lat: 5, Lng: 5}, true},
		{"near edge inside", GeoPoint{Lat: 9.9, Lng: 9.9}, true},
		{"outside right", GeoPoint{Lat: 5, Lng: 11}, false},
		{"outside above", GeoPoint{Lat: 11, Lng: 5}, false},
		{"far away", GeoPoint{Lat: -40, Lng: 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeoPointInPolygon(tt.p, square); got != tt.want {
				t.Errorf("GeoPointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if GeoPointInPolygon(GeoPoint{Lat: 5, Lng: 5}, square[:2]) {
		t.Error("degenerate polygon should contain nothing")
	}
}

func TestGeoPointInPolygonConcave(t *testing.T) {
	// L-shape: notch cut out of the top-right quadrant.
	lshape := []GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 5, Lng: 10},
		{Lat: 5, Lng: 5},
		{Lat: 10, Lng: 5},
		{Lat: 10, Lng: 0},
	}

	if !GeoPointInPolygon(GeoPoint{Lat: 2, Lng: 8}, lshape) {
		t.Error("point in the arm should be inside")
	}
	if GeoPointInPolygon(GeoPoint{Lat: 8, Lng: 8}, lshape) {
		t.Error("point in the notch should be outside")
	}
}

func TestBoundsOf(t *testing.T) {
	points := []GeoPoint{
		{Lat: 5, Lng: -3},
		{Lat: -2, Lng: 7},
		{Lat: 1, Lng: 0},
	}
	b := BoundsOf(points)
	if b.MinLat != -2 || b.MaxLat != 5 || b.MinLng != -3 || b.MaxLng != 7 {
		t.Errorf("BoundsOf = %+v", b)
	}

	c := b.Center()
	if c.Lat != 1.5 || c.Lng != 2 {
		t.Errorf("Center = %+v, want {1.5 2}", c)
	}

	if got := BoundsOf(nil); got != (GeoBounds{}) {
		t.Errorf("BoundsOf(nil) = %+v, want zero", got)
	}
}

func TestGeoCentroid(t *testing.T) {
	points := []GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: 6, Lng: 0},
		{Lat: 0, Lng: 6},
	}
	c := GeoCentroid(points)
	if c.Lat != 2 || c.Lng != 2 {
		t.Errorf("GeoCentroid = %+v, want {2 2}", c)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{45, 45},
		{360, 0},
		{361, 1},
		{-90, 270},
		{-360, 0},
		{720.5, 0.5},
	}
	for _, tt := range tests {
		if got := NormalizeDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeDegrees(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
