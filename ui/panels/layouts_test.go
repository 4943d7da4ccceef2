package panels

import (
	"math"
	"path/filepath"
	"testing"

	"site-planner/internal/app"
	"site-planner/internal/store"
	"site-planner/internal/viewport"
	"site-planner/pkg/geometry"

	"fyne.io/fyne/v2/test"
)

func newPanelFixture(t *testing.T) (*LayoutsPanel, *app.State, *viewport.Viewport) {
	t.Helper()
	test.NewApp()

	state := app.NewState(store.New(filepath.Join(t.TempDir(), "layouts.json")))
	view := viewport.New(geometry.NewGeoPoint(17.3850, 78.4867), 15)
	view.Resize(800, 600)

	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	return NewLayoutsPanel(state, view, w), state, view
}

func drawSquare(s *app.State) {
	s.StartDrawing()
	s.AddDrawingPoint(geometry.NewGeoPoint(17.38, 78.48))
	s.AddDrawingPoint(geometry.NewGeoPoint(17.39, 78.48))
	s.AddDrawingPoint(geometry.NewGeoPoint(17.39, 78.49))
	s.AddDrawingPoint(geometry.NewGeoPoint(17.38, 78.49))
	s.FinishDrawing()
}

func TestEnterSubdivisionBringsLayoutIntoView(t *testing.T) {
	p, state, view := newPanelFixture(t)
	drawSquare(state)

	// Pan far away from the layout before subdividing.
	view.SetCenter(geometry.NewGeoPoint(48.8566, 2.3522))

	p.toggleSubdivision()

	if state.Subdividing() == 0 {
		t.Fatal("subdivision session should be active")
	}
	c := view.Center()
	if math.Abs(c.Lat-17.385) > 1e-6 || math.Abs(c.Lng-78.485) > 1e-6 {
		t.Errorf("center = %+v, want the layout bounds midpoint", c)
	}
	for _, gp := range []geometry.GeoPoint{
		{Lat: 17.38, Lng: 78.48}, {Lat: 17.39, Lng: 78.49},
	} {
		px := view.Project(gp)
		if px.X < 0 || px.X > 800 || px.Y < 0 || px.Y > 600 {
			t.Errorf("layout corner %v off-screen at %v after entry", gp, px)
		}
	}
}

func TestToggleSubdivisionExits(t *testing.T) {
	p, state, view := newPanelFixture(t)
	drawSquare(state)

	p.toggleSubdivision()
	if state.Subdividing() == 0 {
		t.Fatal("first toggle should enter subdivision")
	}

	moved := view.Center()
	p.toggleSubdivision()
	if state.Subdividing() != 0 {
		t.Error("second toggle should exit subdivision")
	}
	if view.Center() != moved {
		t.Error("exit should not move the viewport")
	}
}

func TestToggleSubdivisionNeedsSelection(t *testing.T) {
	p, state, _ := newPanelFixture(t)
	drawSquare(state)
	state.Layouts.ClearSelection()

	p.toggleSubdivision()
	if state.Subdividing() != 0 {
		t.Error("toggle without a selection should do nothing")
	}
}
