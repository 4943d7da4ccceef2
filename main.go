// Site Planner is a desktop editor for geographic site layouts: draw
// boundaries on a map, subdivide them into plots, place image overlays, and
// sketch schematic site plans.
package main

import (
	"flag"
	"log"

	"site-planner/internal/app"
	"site-planner/internal/config"
	"site-planner/internal/store"
	"site-planner/internal/version"
	"site-planner/internal/viewport"
	"site-planner/pkg/geometry"
	"site-planner/ui/mainwindow"
	"site-planner/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	configPath := flag.String("config", "", "path to YAML config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		log.Printf("site-planner %s", version.Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	p := prefs.Load()
	center := geometry.GeoPoint{Lat: cfg.CenterLat, Lng: cfg.CenterLng}
	zoom := cfg.Zoom
	if p.HasView() {
		center = geometry.GeoPoint{Lat: p.CenterLat, Lng: p.CenterLng}
		zoom = p.Zoom
	}

	st := store.New(cfg.DataFile)
	state := app.NewState(st)
	if p.Role == string(app.RoleClient) {
		state.SetRole(app.RoleClient)
	}

	view := viewport.New(center, zoom)

	a := fyneapp.New()
	a.Settings().SetTheme(&app.PlannerTheme{})

	mainwindow.New(a, state, view, p, cfg.SketchBackground).ShowAndRun()
}
