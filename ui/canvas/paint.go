// Package canvas provides the map and sketch canvas widgets and their
// software raster renderers.
package canvas

import (
	"image"
	"image/color"

	"site-planner/pkg/geometry"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9, used for plot
// number labels.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// setPixel writes a pixel with bounds checking.
func setPixel(out *image.RGBA, x, y int, col color.RGBA) {
	b := out.Bounds()
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		out.SetRGBA(x, y, col)
	}
}

// blendPixel alpha-blends a color over the existing pixel.
func blendPixel(out *image.RGBA, x, y int, col color.RGBA) {
	b := out.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if col.A == 0xFF {
		out.SetRGBA(x, y, col)
		return
	}
	alpha := float64(col.A) / 255
	inv := 1 - alpha
	dst := out.RGBAAt(x, y)
	out.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(col.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(col.B)*alpha + float64(dst.B)*inv),
		A: 255,
	})
}

// drawLine draws a line between two points using Bresenham's algorithm.
// A dash interval of zero draws a solid line; otherwise alternating runs of
// that many steps are skipped.
func drawLine(out *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness, dash int) {
	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	step := 0

	for {
		if dash == 0 || (step/dash)%2 == 0 {
			for t := -thickness / 2; t <= thickness/2; t++ {
				for s := -thickness / 2; s <= thickness/2; s++ {
					setPixel(out, x1+s, y1+t, col)
				}
			}
		}
		step++

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillPolygon fills a polygon with a scanline algorithm, alpha-blending the
// color over the existing pixels.
func fillPolygon(out *image.RGBA, points []geometry.Point2D, col color.RGBA) {
	if len(points) < 3 {
		return
	}

	box := geometry.BoundingBox(points)
	bounds := out.Bounds()
	n := len(points)

	for y := int(box.Y); y <= int(box.Y+box.Height); y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}

		// Collect x intersections of the scanline with polygon edges.
		var xs []float64
		fy := float64(y)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]
			if (p1.Y <= fy && p2.Y > fy) || (p2.Y <= fy && p1.Y > fy) {
				t := (fy - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}

		for i := 0; i < len(xs)-1; i++ {
			for j := i + 1; j < len(xs); j++ {
				if xs[j] < xs[i] {
					xs[i], xs[j] = xs[j], xs[i]
				}
			}
		}

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(xs[i]); x <= int(xs[i+1]); x++ {
				blendPixel(out, x, y, col)
			}
		}
	}
}

// strokePolygon draws a closed polygon outline.
func strokePolygon(out *image.RGBA, points []geometry.Point2D, col color.RGBA, thickness int) {
	n := len(points)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		p1 := points[i]
		p2 := points[(i+1)%n]
		drawLine(out, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), col, thickness, 0)
	}
}

// fillRect fills an axis-aligned rectangle, alpha-blending.
func fillRect(out *image.RGBA, r geometry.Rect, col color.RGBA) {
	for y := int(r.Y); y <= int(r.Y+r.Height); y++ {
		for x := int(r.X); x <= int(r.X+r.Width); x++ {
			blendPixel(out, x, y, col)
		}
	}
}

// strokeRect draws an axis-aligned rectangle outline.
func strokeRect(out *image.RGBA, r geometry.Rect, col color.RGBA, thickness int) {
	x1, y1 := int(r.X), int(r.Y)
	x2, y2 := int(r.X+r.Width), int(r.Y+r.Height)
	drawLine(out, x1, y1, x2, y1, col, thickness, 0)
	drawLine(out, x2, y1, x2, y2, col, thickness, 0)
	drawLine(out, x2, y2, x1, y2, col, thickness, 0)
	drawLine(out, x1, y2, x1, y1, col, thickness, 0)
}

// fillCircle fills a circle centered at (cx, cy).
func fillCircle(out *image.RGBA, cx, cy, radius float64, col color.RGBA) {
	r2 := radius * radius
	for y := int(cy - radius - 1); y <= int(cy+radius+1); y++ {
		for x := int(cx - radius - 1); x <= int(cx+radius+1); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy <= r2 {
				blendPixel(out, x, y, col)
			}
		}
	}
}

// drawHandle draws a small filled gesture handle square centered at p.
func drawHandle(out *image.RGBA, p geometry.Point2D, col color.RGBA) {
	const half = 4
	r := geometry.NewRect(p.X-half, p.Y-half, 2*half, 2*half)
	fillRect(out, r, col)
	strokeRect(out, r, color.RGBA{A: 255}, 1)
}

// drawDigits draws a numeric label centered at (centerX, centerY) using the
// 3x5 digit font. Non-digit characters are skipped.
func drawDigits(out *image.RGBA, label string, centerX, centerY, scale int, col color.RGBA) {
	if scale < 1 {
		scale = 1
	}

	charWidth := 3 * scale
	charHeight := 5 * scale
	spacing := scale
	labelWidth := len(label)*charWidth + (len(label)-1)*spacing

	startX := centerX - labelWidth/2
	startY := centerY - charHeight/2

	for i, ch := range label {
		if ch < '0' || ch > '9' {
			continue
		}
		pattern := digitPatterns[ch-'0']
		charX := startX + i*(charWidth+spacing)

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if (pattern[row] & (1 << (2 - c))) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						setPixel(out, charX+c*scale+dx, startY+row*scale+dy, col)
					}
				}
			}
		}
	}
}
