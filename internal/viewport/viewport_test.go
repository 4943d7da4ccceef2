package viewport

import (
	"math"
	"testing"

	"site-planner/pkg/geometry"
)

func TestProjectCenter(t *testing.T) {
	v := New(geometry.NewGeoPoint(17.3850, 78.4867), 15)
	v.Resize(800, 600)

	p := v.Project(v.Center())
	if math.Abs(p.X-400) > 0.5 || math.Abs(p.Y-300) > 0.5 {
		t.Errorf("center projected to %v, want window center (400, 300)", p)
	}
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	v := New(geometry.NewGeoPoint(17.3850, 78.4867), 15)
	v.Resize(1024, 768)

	tests := []geometry.GeoPoint{
		{Lat: 17.3850, Lng: 78.4867},
		{Lat: 17.39, Lng: 78.49},
		{Lat: 17.38, Lng: 78.48},
	}
	for _, gp := range tests {
		back := v.Unproject(v.Project(gp))
		if math.Abs(back.Lat-gp.Lat) > 1e-6 || math.Abs(back.Lng-gp.Lng) > 1e-6 {
			t.Errorf("round trip of %v gave %v", gp, back)
		}
	}
}

func TestZoomClamping(t *testing.T) {
	v := New(geometry.NewGeoPoint(0, 0), 15)

	v.SetZoom(25)
	if v.Zoom() != 19 {
		t.Errorf("zoom above max clamped to %v, want 19", v.Zoom())
	}
	v.SetZoom(0)
	if v.Zoom() != 1 {
		t.Errorf("zoom below min clamped to %v, want 1", v.Zoom())
	}

	v.SetZoom(10)
	v.ZoomIn()
	if v.Zoom() != 10.5 {
		t.Errorf("ZoomIn gave %v, want 10.5", v.Zoom())
	}
	v.ZoomOut()
	v.ZoomOut()
	if v.Zoom() != 9.5 {
		t.Errorf("ZoomOut gave %v, want 9.5", v.Zoom())
	}
}

func TestPanByMovesContentWithPointer(t *testing.T) {
	v := New(geometry.NewGeoPoint(17.3850, 78.4867), 15)
	v.Resize(800, 600)

	// A fixed geographic point starts at the window center.
	mark := v.Center()

	// Dragging right by 100px should carry the content right: the marked
	// point's screen position moves +100 in x.
	v.PanBy(100, 0)
	p := v.Project(mark)
	if math.Abs(p.X-500) > 0.5 || math.Abs(p.Y-300) > 0.5 {
		t.Errorf("after PanBy(100,0) mark at %v, want (500, 300)", p)
	}
}

func TestPanNotifies(t *testing.T) {
	v := New(geometry.NewGeoPoint(10, 10), 12)
	v.Resize(800, 600)

	fired := 0
	v.OnChange(func() { fired++ })

	v.PanBy(10, 10)
	v.ZoomIn()
	v.Resize(640, 480)

	if fired != 3 {
		t.Errorf("change notifications = %d, want 3", fired)
	}
}

func TestFitToBounds(t *testing.T) {
	v := New(geometry.NewGeoPoint(0, 0), 5)
	v.Resize(800, 600)

	boundary := []geometry.GeoPoint{
		{Lat: 17.38, Lng: 78.48},
		{Lat: 17.39, Lng: 78.48},
		{Lat: 17.39, Lng: 78.49},
		{Lat: 17.38, Lng: 78.49},
	}
	v.FitToBounds(boundary)

	// Center lands at the bounds midpoint.
	c := v.Center()
	if math.Abs(c.Lat-17.385) > 1e-6 || math.Abs(c.Lng-78.485) > 1e-6 {
		t.Errorf("center = %v, want bounds midpoint", c)
	}

	// Every corner ends up on screen.
	for _, gp := range boundary {
		p := v.Project(gp)
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Errorf("corner %v projected off-screen to %v at zoom %v", gp, p, v.Zoom())
		}
	}
}

func TestLatitudeClamped(t *testing.T) {
	v := New(geometry.NewGeoPoint(89, 0), 5)
	if v.Center().Lat > maxLat {
		t.Errorf("center latitude %v exceeds the projection cutoff", v.Center().Lat)
	}
}
