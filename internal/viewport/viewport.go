// Package viewport provides the map viewport: a Web-Mercator projection
// between geographic coordinates and screen pixels, plus pan/zoom state with
// change notification.
package viewport

import (
	"math"

	"site-planner/pkg/geometry"
)

const (
	tileSize = 256.0

	minZoom  = 1.0
	maxZoom  = 19.0
	zoomStep = 0.5

	// Web-Mercator latitude cutoff.
	maxLat = 85.05112878
)

// Projector converts between geographic coordinates and screen pixels. It is
// the projection capability the editing engines consume; *Viewport is the
// only production implementation.
type Projector interface {
	Project(geometry.GeoPoint) geometry.Point2D
	Unproject(geometry.Point2D) geometry.GeoPoint
}

// Viewport holds the visible map window: a geographic center, a continuous
// zoom level, and the screen size in pixels. Screen position (0,0) is the
// top-left corner of the window.
type Viewport struct {
	center geometry.GeoPoint
	zoom   float64
	width  float64
	height float64

	listeners []func()
}

// New creates a viewport centered at the given point.
func New(center geometry.GeoPoint, zoom float64) *Viewport {
	v := &Viewport{
		center: clampGeo(center),
		zoom:   clampZoom(zoom),
		width:  800,
		height: 600,
	}
	return v
}

// OnChange registers a callback invoked after every pan, zoom, or resize.
func (v *Viewport) OnChange(fn func()) {
	v.listeners = append(v.listeners, fn)
}

func (v *Viewport) notify() {
	for _, fn := range v.listeners {
		fn()
	}
}

// Center returns the geographic center.
func (v *Viewport) Center() geometry.GeoPoint { return v.center }

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Size returns the screen size in pixels.
func (v *Viewport) Size() (width, height float64) { return v.width, v.height }

// Resize sets the screen size in pixels.
func (v *Viewport) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == v.width && height == v.height {
		return
	}
	v.width = width
	v.height = height
	v.notify()
}

// SetCenter moves the viewport center.
func (v *Viewport) SetCenter(p geometry.GeoPoint) {
	v.center = clampGeo(p)
	v.notify()
}

// SetZoom sets the zoom level, clamped to the supported range. The
// geographic center is preserved.
func (v *Viewport) SetZoom(zoom float64) {
	zoom = clampZoom(zoom)
	if zoom == v.zoom {
		return
	}
	v.zoom = zoom
	v.notify()
}

// ZoomIn increases the zoom level by one step.
func (v *Viewport) ZoomIn() { v.SetZoom(v.zoom + zoomStep) }

// ZoomOut decreases the zoom level by one step.
func (v *Viewport) ZoomOut() { v.SetZoom(v.zoom - zoomStep) }

// PanBy shifts the visible window by a pixel delta. A positive dx drags the
// map content rightward, so the center moves west.
func (v *Viewport) PanBy(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	w := v.worldPoint(v.center)
	w.X -= dx
	w.Y -= dy
	v.center = v.geoPoint(w)
	v.notify()
}

// FitToBounds pans and zooms so the given point sequence is fully visible
// with a small margin. A no-op for an empty sequence.
func (v *Viewport) FitToBounds(points []geometry.GeoPoint) {
	if len(points) == 0 {
		return
	}
	b := geometry.BoundsOf(points)
	v.center = clampGeo(b.Center())

	// Find the largest zoom at which the bounds fit the window.
	zoom := maxZoom
	for zoom > minZoom {
		v.zoom = zoom
		tl := v.Project(geometry.GeoPoint{Lat: b.MaxLat, Lng: b.MinLng})
		br := v.Project(geometry.GeoPoint{Lat: b.MinLat, Lng: b.MaxLng})
		if br.X-tl.X <= v.width*0.9 && br.Y-tl.Y <= v.height*0.9 {
			break
		}
		zoom -= zoomStep
	}
	v.zoom = clampZoom(zoom)
	v.notify()
}

// Project converts a geographic point to screen pixels.
func (v *Viewport) Project(p geometry.GeoPoint) geometry.Point2D {
	w := v.worldPoint(p)
	o := v.origin()
	return geometry.Point2D{X: w.X - o.X, Y: w.Y - o.Y}
}

// Unproject converts a screen pixel position back to geographic coordinates.
func (v *Viewport) Unproject(p geometry.Point2D) geometry.GeoPoint {
	o := v.origin()
	return v.geoPoint(geometry.Point2D{X: p.X + o.X, Y: p.Y + o.Y})
}

// worldSize returns the size in pixels of the full world at the current zoom.
func (v *Viewport) worldSize() float64 {
	return tileSize * math.Pow(2, v.zoom)
}

// origin returns the world-pixel position of the screen's top-left corner.
func (v *Viewport) origin() geometry.Point2D {
	c := v.worldPoint(v.center)
	return geometry.Point2D{X: c.X - v.width/2, Y: c.Y - v.height/2}
}

// worldPoint applies the spherical Mercator forward projection, mapping a
// geographic point into world-pixel space at the current zoom.
func (v *Viewport) worldPoint(p geometry.GeoPoint) geometry.Point2D {
	size := v.worldSize()
	x := (p.Lng + 180) / 360 * size

	latRad := clampLat(p.Lat) * math.Pi / 180
	y := (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * size
	return geometry.Point2D{X: x, Y: y}
}

// geoPoint applies the inverse Mercator projection.
func (v *Viewport) geoPoint(w geometry.Point2D) geometry.GeoPoint {
	size := v.worldSize()
	lng := w.X/size*360 - 180

	n := math.Pi * (1 - 2*w.Y/size)
	lat := math.Atan(math.Sinh(n)) * 180 / math.Pi
	return geometry.GeoPoint{Lat: clampLat(lat), Lng: clampLng(lng)}
}

func clampZoom(zoom float64) float64 {
	if zoom < minZoom {
		return minZoom
	}
	if zoom > maxZoom {
		return maxZoom
	}
	return zoom
}

func clampLat(lat float64) float64 {
	if lat > maxLat {
		return maxLat
	}
	if lat < -maxLat {
		return -maxLat
	}
	return lat
}

func clampLng(lng float64) float64 {
	if lng > 180 {
		return 180
	}
	if lng < -180 {
		return -180
	}
	return lng
}

func clampGeo(p geometry.GeoPoint) geometry.GeoPoint {
	return geometry.GeoPoint{Lat: clampLat(p.Lat), Lng: clampLng(p.Lng)}
}
