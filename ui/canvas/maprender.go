package canvas

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"math"
	"os"

	"site-planner/internal/content"
	"site-planner/internal/layout"
	"site-planner/internal/overlay"
	"site-planner/pkg/colorutil"
	"site-planner/pkg/geometry"

	xdraw "golang.org/x/image/draw"
)

// Side length in pixels at which overlay content is rasterized before
// scaling.
const contentRasterSize = 128

// render is the raster drawing function for the map surface.
func (mc *MapCanvas) render(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	// Base wash
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetRGBA(x, y, colorutil.Water)
		}
	}

	mc.drawGraticule(out, w, h)

	subdividing := mc.state.Subdividing()
	selected := mc.state.Layouts.SelectedID()
	for _, l := range mc.state.Layouts.All() {
		mc.drawLayout(out, l, l.ID == selected, l.ID == subdividing)
	}

	mc.drawPreview(out)

	for _, o := range mc.state.Overlays.Overlays() {
		mc.drawOverlay(out, o)
	}

	return out
}

// drawGraticule draws latitude/longitude grid lines spaced to roughly 100
// screen pixels.
func (mc *MapCanvas) drawGraticule(out *image.RGBA, w, h int) {
	// Degrees of longitude per 100 pixels at this zoom, snapped to a
	// 1/2/5 decade series.
	degPerPx := 360 / (256 * math.Pow(2, mc.view.Zoom()))
	step := niceStep(degPerPx * 100)

	tl := mc.view.Unproject(geometry.NewPoint2D(0, 0))
	br := mc.view.Unproject(geometry.NewPoint2D(float64(w), float64(h)))

	// tl carries the smaller longitude and the larger latitude.
	for lng := math.Floor(tl.Lng/step) * step; lng <= br.Lng+step; lng += step {
		x := int(mc.view.Project(geometry.GeoPoint{Lat: tl.Lat, Lng: lng}).X)
		drawLine(out, x, 0, x, h, colorutil.Graticule, 1, 0)
	}
	for lat := math.Floor(br.Lat/step) * step; lat <= tl.Lat+step; lat += step {
		y := int(mc.view.Project(geometry.GeoPoint{Lat: lat, Lng: tl.Lng}).Y)
		drawLine(out, 0, y, w, y, colorutil.Graticule, 1, 0)
	}
}

// niceStep snaps a raw degree interval to the nearest 1/2/5 decade value.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	switch {
	case norm < 1.5:
		return mag
	case norm < 3.5:
		return 2 * mag
	case norm < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// projectBoundary converts a geographic boundary to screen points.
func (mc *MapCanvas) projectBoundary(boundary []geometry.GeoPoint) []geometry.Point2D {
	pts := make([]geometry.Point2D, len(boundary))
	for i, gp := range boundary {
		pts[i] = mc.view.Project(gp)
	}
	return pts
}

// drawLayout renders a layout boundary, its plots, and their number labels.
func (mc *MapCanvas) drawLayout(out *image.RGBA, l layout.Layout, selected, subdividing bool) {
	pts := mc.projectBoundary(l.Boundary)
	fillPolygon(out, pts, colorutil.WithAlpha(colorutil.ForStatus(string(l.Status)), 70))

	outline := colorutil.Boundary
	thickness := 2
	if selected {
		outline = colorutil.Yellow
		thickness = 3
	}
	strokePolygon(out, pts, outline, thickness)

	for _, p := range l.Plots {
		ppts := mc.projectBoundary(p.Boundary)
		fillPolygon(out, ppts, colorutil.WithAlpha(colorutil.ForStatus(string(p.Status)), 120))
		strokePolygon(out, ppts, colorutil.White, 1)

		c := geometry.Centroid(ppts)
		drawDigits(out, p.PlotNumber, int(c.X), int(c.Y), 2, colorutil.Black)
	}

	if subdividing {
		// Emphasize the layout an active subdivision session is editing.
		strokePolygon(out, pts, colorutil.Preview, 3)
	}
}

// drawPreview renders the in-progress drawing session: vertices as square
// markers joined by a dashed path.
func (mc *MapCanvas) drawPreview(out *image.RGBA) {
	points := mc.state.Drawing.Points()
	if len(points) == 0 {
		return
	}

	pts := mc.projectBoundary(points)
	for i := 1; i < len(pts); i++ {
		drawLine(out, int(pts[i-1].X), int(pts[i-1].Y), int(pts[i].X), int(pts[i].Y),
			colorutil.Preview, 2, 6)
	}
	for _, p := range pts {
		fillRect(out, geometry.NewRect(p.X-3, p.Y-3, 6, 6), colorutil.Preview)
	}
}

// drawOverlay composites an overlay at its projected anchor with its scale
// and rotation, then draws gesture handles unless it is fixed.
func (mc *MapCanvas) drawOverlay(out *image.RGBA, o *overlay.Overlay) {
	r := mc.overlayRect(o)
	base := mc.baseRaster(o)

	if base != nil {
		mc.compositeContent(out, base, r, o.Rotation)
	} else {
		// Opaque reference with no local pixels: placeholder frame.
		fillRect(out, r, colorutil.WithAlpha(colorutil.White, 160))
		strokeRect(out, r, colorutil.Boundary, 2)
		c := r.Center()
		drawLine(out, int(r.X), int(c.Y), int(r.X+r.Width), int(c.Y), colorutil.Boundary, 1, 0)
		drawLine(out, int(c.X), int(r.Y), int(c.X), int(r.Y+r.Height), colorutil.Boundary, 1, 0)
	}

	if o.Fixed || !mc.state.CanEdit() {
		return
	}

	strokeRect(out, r, colorutil.Handle, 1)
	drawHandle(out, mc.resizeHandlePos(r), colorutil.Handle)

	rot := mc.rotateHandlePos(r)
	drawLine(out, int(r.X+r.Width/2), int(r.Y), int(rot.X), int(rot.Y), colorutil.Handle, 1, 0)
	fillCircle(out, rot.X, rot.Y, 5, colorutil.Handle)
}

// baseRaster returns the overlay's rasterized content, rendering and caching
// it on first use. Returns nil when the payload has no local pixels.
func (mc *MapCanvas) baseRaster(o *overlay.Overlay) *image.RGBA {
	if img, ok := mc.baseCache[o.ID]; ok {
		return img
	}

	var img *image.RGBA
	switch {
	case o.Content.Markup != "":
		rendered, err := content.Rasterize(o.Content.Markup, contentRasterSize, contentRasterSize)
		if err != nil {
			log.Printf("canvas: rasterize overlay %s: %v", o.ID, err)
		} else {
			img = rendered
		}
	case o.Content.URL != "":
		img = loadLocalImage(o.Content.URL)
	}

	// A nil entry is cached too, so a bad payload is decoded only once.
	mc.baseCache[o.ID] = img
	return img
}

// loadLocalImage decodes a raster reference when it points at a readable
// local file. Remote references stay opaque and get the placeholder.
func loadLocalImage(path string) *image.RGBA {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		log.Printf("canvas: decode %s: %v", path, err)
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, contentRasterSize, contentRasterSize))
	xdraw.ApproxBiLinear.Scale(img, img.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return img
}

// compositeContent draws the content raster into the target rect, scaling
// with x/image/draw and rotating by inverse affine sampling.
func (mc *MapCanvas) compositeContent(out *image.RGBA, base *image.RGBA, r geometry.Rect, rotationDeg float64) {
	w := int(r.Width)
	h := int(r.Height)
	if w < 1 || h < 1 {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), base, base.Bounds(), xdraw.Over, nil)

	if rotationDeg == 0 {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				blendPixel(out, int(r.X)+x, int(r.Y)+y, scaled.RGBAAt(x, y))
			}
		}
		return
	}

	// Rotate around the rect center by sampling through the inverse
	// transform.
	center := r.Center()
	fw, fh := float64(w), float64(h)
	t := geometry.Translation(center.X, center.Y).
		Compose(geometry.Rotation(rotationDeg * math.Pi / 180)).
		Compose(geometry.Translation(-fw/2, -fh/2))
	inv, ok := t.Inverse()
	if !ok {
		return
	}

	// Iterate the axis-aligned bounds of the rotated rect.
	corners := []geometry.Point2D{
		t.Apply(geometry.NewPoint2D(0, 0)),
		t.Apply(geometry.NewPoint2D(fw, 0)),
		t.Apply(geometry.NewPoint2D(fw, fh)),
		t.Apply(geometry.NewPoint2D(0, fh)),
	}
	box := geometry.BoundingBox(corners)

	for y := int(box.Y); y <= int(box.Y+box.Height); y++ {
		for x := int(box.X); x <= int(box.X+box.Width); x++ {
			src := inv.Apply(geometry.NewPoint2D(float64(x), float64(y)))
			sx, sy := int(src.X), int(src.Y)
			if sx < 0 || sx >= w || sy < 0 || sy >= h {
				continue
			}
			blendPixel(out, x, y, scaled.RGBAAt(sx, sy))
		}
	}
}
