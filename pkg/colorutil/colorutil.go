// Package colorutil provides shared display colors for the site planner.
package colorutil

import "image/color"

// Common canvas colors used throughout the application.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow = color.RGBA{R: 255, G: 255, B: 0, A: 255}

	// Map surface
	Water     = color.RGBA{R: 0xAA, G: 0xD3, B: 0xDF, A: 255}
	Graticule = color.RGBA{R: 0x8F, G: 0xB4, B: 0xC0, A: 255}

	// Status fills
	Available = color.RGBA{R: 0x43, G: 0xA0, B: 0x47, A: 255} // Green
	Pending   = color.RGBA{R: 0xFB, G: 0x8C, B: 0x00, A: 255} // Orange
	Sold      = color.RGBA{R: 0xE5, G: 0x39, B: 0x35, A: 255} // Red

	// Editing chrome
	Boundary = color.RGBA{R: 0x1A, G: 0x73, B: 0xE8, A: 255} // Layout outline
	Preview  = color.RGBA{R: 0xFF, G: 0xB3, B: 0x00, A: 255} // In-progress drawing
	Handle   = color.RGBA{R: 0x1A, G: 0x73, B: 0xE8, A: 255} // Gesture handles
)

// ForStatus maps a status name to its fill color.
func ForStatus(status string) color.RGBA {
	switch status {
	case "Pending":
		return Pending
	case "Sold":
		return Sold
	default:
		return Available
	}
}

// WithAlpha returns the color with its alpha channel replaced.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	c.A = a
	return c
}
