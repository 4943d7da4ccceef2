// Package config provides application configuration loading and validation.
// It uses koanf to merge an optional YAML file over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the editor.
type Config struct {
	// Initial viewport
	CenterLat float64 `koanf:"center_lat"`
	CenterLng float64 `koanf:"center_lng"`
	Zoom      float64 `koanf:"zoom"`

	// Persistence
	DataFile string `koanf:"data_file"`

	// Sketch canvas
	SketchWidth      int    `koanf:"sketch_width"`
	SketchHeight     int    `koanf:"sketch_height"`
	SketchBackground string `koanf:"sketch_background"`
}

// defaults returns the built-in configuration.
func defaults() Config {
	dataDir, err := os.UserConfigDir()
	if err != nil {
		dataDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return Config{
		CenterLat:    17.3850,
		CenterLng:    78.4867,
		Zoom:         15,
		DataFile:     filepath.Join(dataDir, "site-planner", "layouts.json"),
		SketchWidth:  1024,
		SketchHeight: 768,
	}
}

// Load reads configuration from the given YAML file, merged over defaults.
// An empty path or missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.CenterLat < -90 || c.CenterLat > 90 {
		return fmt.Errorf("config: center_lat %v out of range", c.CenterLat)
	}
	if c.CenterLng < -180 || c.CenterLng > 180 {
		return fmt.Errorf("config: center_lng %v out of range", c.CenterLng)
	}
	if c.Zoom < 1 || c.Zoom > 19 {
		return fmt.Errorf("config: zoom %v out of range", c.Zoom)
	}
	if c.SketchWidth <= 0 || c.SketchHeight <= 0 {
		return fmt.Errorf("config: sketch canvas size must be positive")
	}
	return nil
}
