// Command layoutcheck inspects a saved layouts file and reports boundary and
// status problems.
package main

import (
	"flag"
	"fmt"
	"os"

	"site-planner/internal/layout"
	"site-planner/internal/store"
	"site-planner/pkg/geometry"
)

func main() {
	dataFile := flag.String("data", "", "Path to layouts JSON file")
	verbose := flag.Bool("v", false, "Print every layout and plot")
	flag.Parse()

	if *dataFile == "" {
		fmt.Println("Usage: layoutcheck -data <layouts.json> [-v]")
		os.Exit(1)
	}

	if _, err := os.Stat(*dataFile); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot read %s: %v\n", *dataFile, err)
		os.Exit(1)
	}

	layouts := store.New(*dataFile).LoadLayouts()
	fmt.Printf("Loaded %d layouts from %s\n\n", len(layouts), *dataFile)

	byStatus := map[layout.Status]int{}
	problems := 0
	plots := 0

	for _, l := range layouts {
		byStatus[l.Status]++
		plots += len(l.Plots)

		if *verbose {
			fmt.Printf("Layout %d %q (%s): %d boundary points, %d plots\n",
				l.ID, l.Name, l.Status, len(l.Boundary), len(l.Plots))
		}

		if !geometry.ValidBoundary(l.Boundary) {
			fmt.Printf("  PROBLEM: layout %d %q has a short boundary (%d points)\n",
				l.ID, l.Name, len(l.Boundary))
			problems++
		}

		for _, p := range l.Plots {
			byStatus[p.Status]++
			if !geometry.ValidBoundary(p.Boundary) {
				fmt.Printf("  PROBLEM: plot %s in layout %d has a short boundary (%d points)\n",
					p.PlotNumber, l.ID, len(p.Boundary))
				problems++
				continue
			}
			// Plot corners outside the parent are legal but worth flagging.
			outside := 0
			for _, gp := range p.Boundary {
				if !geometry.GeoPointInPolygon(gp, l.Boundary) {
					outside++
				}
			}
			if outside > 0 {
				fmt.Printf("  NOTE: plot %s in layout %d has %d corners outside its layout\n",
					p.PlotNumber, l.ID, outside)
			}
		}
	}

	fmt.Printf("\nSummary: %d layouts, %d plots\n", len(layouts), plots)
	for _, s := range []layout.Status{layout.StatusAvailable, layout.StatusPending, layout.StatusSold} {
		fmt.Printf("  %-9s %d\n", s, byStatus[s])
	}

	if problems > 0 {
		fmt.Printf("\n%d problems found\n", problems)
		os.Exit(1)
	}
	fmt.Println("\nNo problems found")
}
