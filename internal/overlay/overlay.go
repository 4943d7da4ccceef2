// Package overlay implements the manipulation engine for decorative map
// overlays: free-floating elements anchored to a geographic point, each with
// a scale and rotation, dragged/resized/rotated through pointer gestures
// while the map viewport shifts underneath them.
package overlay

import (
	"site-planner/internal/content"
	"site-planner/pkg/geometry"

	"github.com/google/uuid"
)

// MinScale is the floor applied during interactive resize so an overlay can
// never collapse to a degenerate size.
const MinScale = 0.1

// Overlay is a geographically anchored decorative element. The anchor is the
// only positional source of truth; pixel positions are always derived from
// it through the current projection and never cached across viewport
// changes.
type Overlay struct {
	ID       string            `json:"id"`
	Content  content.Content   `json:"content"`
	Anchor   geometry.GeoPoint `json:"anchor"`
	Scale    float64           `json:"scale"`
	Rotation float64           `json:"rotation"`
	Fixed    bool              `json:"fixed"`
}

// Snapshot is the read-only view handed to the host when an overlay is
// fixed, so the host may promote it into a permanent record.
type Snapshot struct {
	ID      string
	Content content.Content
	Anchor  geometry.GeoPoint
}

// New creates an overlay at the given anchor with identity scale and
// rotation. Content must have been validated by the caller.
func New(c content.Content, anchor geometry.GeoPoint) *Overlay {
	return &Overlay{
		ID:      uuid.NewString(),
		Content: c,
		Anchor:  anchor,
		Scale:   1.0,
	}
}
