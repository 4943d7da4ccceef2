package drawing

import (
	"testing"

	"site-planner/pkg/geometry"
)

func TestAddPointRequiresSession(t *testing.T) {
	m := NewMachine()

	if m.AddPoint(geometry.NewGeoPoint(1, 1)) {
		t.Error("AddPoint outside a session should be rejected")
	}
	if len(m.Points()) != 0 {
		t.Error("rejected point should not be buffered")
	}
}

func TestFinishOrderedBoundary(t *testing.T) {
	m := NewMachine()
	m.Start()

	clicks := []geometry.GeoPoint{
		{Lat: 17.38, Lng: 78.48},
		{Lat: 17.39, Lng: 78.48},
		{Lat: 17.385, Lng: 78.49},
	}
	for _, p := range clicks {
		if !m.AddPoint(p) {
			t.Fatalf("AddPoint(%v) rejected during session", p)
		}
	}

	boundary, ok := m.Finish()
	if !ok {
		t.Fatal("Finish with 3 points should succeed")
	}
	if len(boundary) != 3 {
		t.Fatalf("boundary has %d points, want 3", len(boundary))
	}
	for i, p := range clicks {
		if boundary[i] != p {
			t.Errorf("boundary[%d] = %v, want %v (click order preserved)", i, boundary[i], p)
		}
	}

	if m.State() != StateIdle {
		t.Error("machine should be idle after finish")
	}
	if len(m.Points()) != 0 {
		t.Error("buffer should be empty after finish")
	}
}

func TestFinishBelowMinimumIsNoOp(t *testing.T) {
	m := NewMachine()
	m.Start()
	m.AddPoint(geometry.NewGeoPoint(1, 1))
	m.AddPoint(geometry.NewGeoPoint(2, 2))

	if m.CanFinish() {
		t.Error("CanFinish with 2 points should be false")
	}

	boundary, ok := m.Finish()
	if ok || boundary != nil {
		t.Error("Finish with 2 points should be a no-op")
	}

	// The session continues: the buffer is intact and accepting points.
	if m.State() != StateDrawing {
		t.Error("failed finish should leave the session active")
	}
	if len(m.Points()) != 2 {
		t.Errorf("buffer has %d points after failed finish, want 2", len(m.Points()))
	}

	m.AddPoint(geometry.NewGeoPoint(3, 3))
	if !m.CanFinish() {
		t.Error("third point should enable finishing")
	}
}

func TestCancelDiscardsEverything(t *testing.T) {
	m := NewMachine()
	m.Start()
	m.AddPoint(geometry.NewGeoPoint(1, 1))
	m.AddPoint(geometry.NewGeoPoint(2, 2))
	m.AddPoint(geometry.NewGeoPoint(3, 3))

	m.Cancel()

	if m.State() != StateIdle {
		t.Error("machine should be idle after cancel")
	}
	if len(m.Points()) != 0 {
		t.Error("buffer should be empty after cancel")
	}
	if _, ok := m.Finish(); ok {
		t.Error("Finish after cancel should fail")
	}
}

func TestStartDiscardsStaleBuffer(t *testing.T) {
	m := NewMachine()
	m.Start()
	m.AddPoint(geometry.NewGeoPoint(1, 1))

	m.Start()
	if len(m.Points()) != 0 {
		t.Error("restart should clear the buffer")
	}
}

func TestPointsReturnsCopy(t *testing.T) {
	m := NewMachine()
	m.Start()
	m.AddPoint(geometry.NewGeoPoint(1, 1))

	pts := m.Points()
	pts[0] = geometry.NewGeoPoint(99, 99)

	if m.Points()[0].Lat == 99 {
		t.Error("mutating the returned slice should not affect the buffer")
	}
}
