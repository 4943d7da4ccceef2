package canvas

import (
	"image"
	"image/color"
	"testing"

	"site-planner/pkg/geometry"
)

var red = color.RGBA{R: 255, A: 255}

func TestDrawLineEndpoints(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	drawLine(img, 5, 5, 40, 30, red, 1, 0)

	if img.RGBAAt(5, 5) != red {
		t.Error("start point not painted")
	}
	if img.RGBAAt(40, 30) != red {
		t.Error("end point not painted")
	}
}

func TestDrawLineClipped(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// Must not panic when the line leaves the image.
	drawLine(img, -20, 5, 30, 5, red, 3, 0)
	if img.RGBAAt(5, 5) != red {
		t.Error("in-bounds portion not painted")
	}
}

func TestDrawLineDashed(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 10))
	drawLine(img, 0, 5, 99, 5, red, 1, 4)

	painted, gaps := 0, 0
	for x := 0; x < 100; x++ {
		if img.RGBAAt(x, 5) == red {
			painted++
		} else {
			gaps++
		}
	}
	if painted == 0 || gaps == 0 {
		t.Errorf("dashed line painted %d / skipped %d pixels, want both nonzero", painted, gaps)
	}
}

func TestFillPolygon(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	square := []geometry.Point2D{
		{X: 10, Y: 10}, {X: 30, Y: 10}, {X: 30, Y: 30}, {X: 10, Y: 30},
	}
	fillPolygon(img, square, red)

	if img.RGBAAt(20, 20) != red {
		t.Error("interior not filled")
	}
	if img.RGBAAt(5, 20) == red || img.RGBAAt(35, 20) == red {
		t.Error("exterior painted")
	}

	// Degenerate input is ignored.
	fillPolygon(img, square[:2], red)
}

func TestFillPolygonBlends(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	tri := []geometry.Point2D{{X: 0, Y: 0}, {X: 19, Y: 0}, {X: 0, Y: 19}}
	fillPolygon(img, tri, color.RGBA{R: 255, A: 128})

	got := img.RGBAAt(2, 2)
	if got.R == 0 || got.B == 0 {
		t.Errorf("half-alpha fill should blend, got %+v", got)
	}
}

func TestDrawDigits(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 20))
	drawDigits(img, "42", 30, 10, 2, red)

	painted := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 60; x++ {
			if img.RGBAAt(x, y) == red {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("label not painted")
	}

	// Non-digit characters are skipped without panicking.
	drawDigits(img, "a1", 30, 10, 1, red)
}

func TestFillCircle(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	fillCircle(img, 20, 20, 8, red)

	if img.RGBAAt(20, 20) != red {
		t.Error("center not painted")
	}
	if img.RGBAAt(20, 12) != red {
		t.Error("top of the circle not painted")
	}
	if img.RGBAAt(5, 5) == red {
		t.Error("outside the radius painted")
	}
}
