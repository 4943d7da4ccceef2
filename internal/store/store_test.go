package store

import (
	"os"
	"path/filepath"
	"testing"

	"site-planner/internal/layout"
	"site-planner/pkg/geometry"
)

func sampleLayouts() []layout.Layout {
	boundary := []geometry.GeoPoint{
		{Lat: 17.38, Lng: 78.48},
		{Lat: 17.39, Lng: 78.48},
		{Lat: 17.39, Lng: 78.49},
	}
	plot, _ := layout.NewPlot("1", boundary)
	plot.Status = layout.StatusSold
	return []layout.Layout{
		{
			ID:         1,
			Name:       "Lakeview",
			VendorName: "Acme Estates",
			Status:     layout.StatusAvailable,
			Boundary:   boundary,
			Plots:      []layout.Plot{plot},
		},
		{
			ID:       2,
			Name:     "Hilltop",
			Status:   layout.StatusPending,
			Boundary: boundary,
		},
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope", "layouts.json"))
	if got := s.LoadLayouts(); len(got) != 0 {
		t.Errorf("missing file loaded %d layouts, want 0", len(got))
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := New(path).LoadLayouts(); len(got) != 0 {
		t.Errorf("malformed file loaded %d layouts, want 0", len(got))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "layouts.json")
	s := New(path)

	want := sampleLayouts()
	if err := s.SaveLayouts(want); err != nil {
		t.Fatal(err)
	}

	got := s.LoadLayouts()
	if len(got) != 2 {
		t.Fatalf("loaded %d layouts, want 2", len(got))
	}
	if got[0].Name != "Lakeview" || got[0].VendorName != "Acme Estates" {
		t.Errorf("layout metadata lost: %+v", got[0])
	}
	if got[1].Status != layout.StatusPending {
		t.Errorf("status = %v, want Pending", got[1].Status)
	}
	if len(got[0].Plots) != 1 || got[0].Plots[0].Status != layout.StatusSold {
		t.Errorf("plot lost or changed: %+v", got[0].Plots)
	}
	if len(got[0].Boundary) != 3 || got[0].Boundary[0] != (geometry.GeoPoint{Lat: 17.38, Lng: 78.48}) {
		t.Errorf("boundary lost: %+v", got[0].Boundary)
	}
}

func TestSaveCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "layouts.json")
	if err := New(path).SaveLayouts(sampleLayouts()); err != nil {
		t.Fatalf("save into missing directory: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.json")
	s := New(path)

	s.SaveLayouts(sampleLayouts())
	if err := s.SaveLayouts(nil); err != nil {
		t.Fatal(err)
	}
	if got := s.LoadLayouts(); len(got) != 0 {
		t.Errorf("loaded %d layouts after saving empty list, want 0", len(got))
	}
}
