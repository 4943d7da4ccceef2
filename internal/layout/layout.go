// Package layout provides the in-memory collection of site layouts and
// their sub-plots. Pure data operations: id assignment, update-by-id,
// delete-by-id, selection tracking. Geometry logic lives elsewhere.
package layout

import (
	"errors"

	"site-planner/pkg/geometry"

	"github.com/google/uuid"
)

// Status is the sales state of a layout or plot.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusPending   Status = "Pending"
	StatusSold      Status = "Sold"
)

// ErrShortBoundary indicates a boundary with fewer than three points.
var ErrShortBoundary = errors.New("layout: boundary needs at least 3 points")

// Plot is a sub-division of a layout's boundary with independent status.
// Its boundary is expected, but not enforced, to lie within the parent
// layout's boundary.
type Plot struct {
	ID         string              `json:"id"`
	PlotNumber string              `json:"plotNumber"`
	Status     Status              `json:"status"`
	Boundary   []geometry.GeoPoint `json:"boundary"`
}

// Layout is a top-level geographic site boundary with metadata and optional
// sub-plots. Plots are owned inline and discarded with their layout.
type Layout struct {
	ID         int                 `json:"id"`
	Name       string              `json:"name"`
	VendorName string              `json:"vendorName"`
	Status     Status              `json:"status"`
	Boundary   []geometry.GeoPoint `json:"boundary"`
	Plots      []Plot              `json:"plots"`
}

// NewPlot creates a plot with an opaque unique id and default status.
func NewPlot(plotNumber string, boundary []geometry.GeoPoint) (Plot, error) {
	if !geometry.ValidBoundary(boundary) {
		return Plot{}, ErrShortBoundary
	}
	return Plot{
		ID:         uuid.NewString(),
		PlotNumber: plotNumber,
		Status:     StatusAvailable,
		Boundary:   boundary,
	}, nil
}
