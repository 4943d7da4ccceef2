package canvas

import (
	"image"
	"testing"

	"site-planner/internal/viewport"
	"site-planner/pkg/colorutil"
	"site-planner/pkg/geometry"
)

func TestGraticuleDrawsBothOrientations(t *testing.T) {
	v := viewport.New(geometry.NewGeoPoint(17.3850, 78.4867), 15)
	v.Resize(400, 300)
	mc := &MapCanvas{view: v}

	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	mc.drawGraticule(img, 400, 300)

	// A vertical line paints a full column, a horizontal one a full row.
	verticals := 0
	for x := 0; x < 400; x++ {
		run := 0
		for y := 0; y < 300; y++ {
			if img.RGBAAt(x, y) == colorutil.Graticule {
				run++
			}
		}
		if run >= 250 {
			verticals++
		}
	}
	horizontals := 0
	for y := 0; y < 300; y++ {
		run := 0
		for x := 0; x < 400; x++ {
			if img.RGBAAt(x, y) == colorutil.Graticule {
				run++
			}
		}
		if run >= 350 {
			horizontals++
		}
	}

	if verticals == 0 {
		t.Error("no vertical (longitude) graticule lines rendered")
	}
	if horizontals == 0 {
		t.Error("no horizontal (latitude) graticule lines rendered")
	}
}

func TestNiceStep(t *testing.T) {
	tests := []struct {
		raw, want float64
	}{
		{0.0043, 0.005},
		{0.011, 0.01},
		{0.024, 0.02},
		{0.3, 0.2},
		{8, 10},
	}
	for _, tt := range tests {
		if got := niceStep(tt.raw); got != tt.want {
			t.Errorf("niceStep(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
