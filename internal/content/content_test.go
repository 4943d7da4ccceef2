package content

import (
	"errors"
	"testing"
)

const validSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <rect x="10" y="10" width="80" height="80" fill="#1a73e8"/>
  <circle cx="50" cy="50" r="20" fill="#ffb300"/>
</svg>`

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		wantErr error
	}{
		{"empty", Content{}, ErrEmpty},
		{"url only", Content{URL: "https://example.com/plan.png"}, nil},
		{"valid markup", Content{Markup: validSVG}, nil},
		{"both", Content{URL: "plan.png", Markup: validSVG}, nil},
		{"broken markup", Content{Markup: "<svg><rect</svg>"}, ErrInvalidMarkup},
		{"unclosed element", Content{Markup: "<svg><g>"}, ErrInvalidMarkup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.content)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	if !(Content{}).Empty() {
		t.Error("zero content should be empty")
	}
	if (Content{URL: "x"}).Empty() || (Content{Markup: "<svg/>"}).Empty() {
		t.Error("populated content should not be empty")
	}
}

func TestRasterize(t *testing.T) {
	img, err := Rasterize(validSVG, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Errorf("raster size = %v, want 64x64", img.Bounds())
	}

	// The rect fill must have produced opaque pixels somewhere.
	painted := false
	for y := 0; y < 64 && !painted; y++ {
		for x := 0; x < 64; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Error("rasterized image is fully transparent")
	}
}

func TestRasterizeRejectsBadInput(t *testing.T) {
	if _, err := Rasterize("<svg><rect", 64, 64); !errors.Is(err, ErrInvalidMarkup) {
		t.Errorf("err = %v, want ErrInvalidMarkup", err)
	}
	if _, err := Rasterize(validSVG, 0, 64); err == nil {
		t.Error("zero raster size should be rejected")
	}
}
