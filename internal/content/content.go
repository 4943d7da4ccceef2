// Package content handles overlay payloads: an opaque raster image reference
// or inline SVG markup. The manipulation engine never inspects payloads;
// validation and rasterization live here.
package content

import (
	"errors"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var (
	// ErrEmpty indicates a payload with neither an image reference nor
	// inline markup.
	ErrEmpty = errors.New("content: empty payload")

	// ErrInvalidMarkup indicates inline markup that does not parse as SVG.
	ErrInvalidMarkup = errors.New("content: invalid vector markup")
)

// Content is an overlay payload. At least one field must be present; both
// are permitted, in which case Markup wins for display.
type Content struct {
	URL    string `json:"url,omitempty"`
	Markup string `json:"markup,omitempty"`
}

// Empty reports whether the payload carries nothing.
func (c Content) Empty() bool {
	return c.URL == "" && c.Markup == ""
}

// Validate checks the payload before it is applied to an overlay. A URL is
// treated as opaque; inline markup must parse as SVG.
func Validate(c Content) error {
	if c.Empty() {
		return ErrEmpty
	}
	if c.Markup != "" {
		if _, err := oksvg.ReadIconStream(strings.NewReader(c.Markup)); err != nil {
			return errors.Join(ErrInvalidMarkup, err)
		}
	}
	return nil
}

// Rasterize renders inline SVG markup into an RGBA image of the given pixel
// size for canvas compositing.
func Rasterize(markup string, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("content: non-positive raster size")
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(markup))
	if err != nil {
		return nil, errors.Join(ErrInvalidMarkup, err)
	}

	icon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}
