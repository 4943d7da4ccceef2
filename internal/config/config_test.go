package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CenterLat != 17.3850 || cfg.CenterLng != 78.4867 {
		t.Errorf("default center = (%v, %v)", cfg.CenterLat, cfg.CenterLng)
	}
	if cfg.Zoom != 15 {
		t.Errorf("default zoom = %v, want 15", cfg.Zoom)
	}
	if cfg.DataFile == "" {
		t.Error("default data file should be set")
	}
	if cfg.SketchWidth != 1024 || cfg.SketchHeight != 768 {
		t.Errorf("default sketch size = %dx%d", cfg.SketchWidth, cfg.SketchHeight)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Zoom != 15 {
		t.Errorf("zoom = %v, want the default 15", cfg.Zoom)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
center_lat: 12.9716
center_lng: 77.5946
zoom: 13
sketch_background: /tmp/plan.png
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CenterLat != 12.9716 || cfg.CenterLng != 77.5946 || cfg.Zoom != 13 {
		t.Errorf("overridden view = (%v, %v) z%v", cfg.CenterLat, cfg.CenterLng, cfg.Zoom)
	}
	if cfg.SketchBackground != "/tmp/plan.png" {
		t.Errorf("sketch background = %q", cfg.SketchBackground)
	}
	// Untouched keys keep their defaults.
	if cfg.SketchWidth != 1024 {
		t.Errorf("sketch width = %d, want default 1024", cfg.SketchWidth)
	}
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"latitude", "center_lat: 91"},
		{"longitude", "center_lng: -200"},
		{"zoom", "zoom: 30"},
		{"sketch size", "sketch_width: 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("out-of-range value should be rejected")
			}
		})
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("zoom: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML should be rejected")
	}
}
