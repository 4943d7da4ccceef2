package overlay

import (
	"math"

	"site-planner/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r2"
)

// GestureKind identifies the active pointer gesture.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureDrag
	GestureResize
	GestureRotate
)

// Projector converts between geographic and screen coordinates. Satisfied by
// *viewport.Viewport.
type Projector interface {
	Project(geometry.GeoPoint) geometry.Point2D
	Unproject(geometry.Point2D) geometry.GeoPoint
}

// gesture is the engine's single slot of active-manipulation state. At most
// one gesture exists system-wide; pointer-up always clears it.
type gesture struct {
	kind GestureKind
	id   string

	// Drag: last pointer position, for pure relative translation.
	last r2.Vec

	// Resize/rotate: screen anchor and initial pointer geometry captured at
	// gesture start.
	anchorPx      r2.Vec
	startDist     float64
	startAngle    float64
	startScale    float64
	startRotation float64
}

// Engine owns the overlay set and tracks at most one active gesture
// globally. All methods run synchronously inside pointer event handlers.
type Engine struct {
	overlays []*Overlay
	gesture  gesture

	onUpdated func(*Overlay)
	onFixed   func(Snapshot)
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// OnUpdated registers a callback invoked after every gesture mutation.
func (e *Engine) OnUpdated(fn func(*Overlay)) { e.onUpdated = fn }

// OnFixed registers a callback invoked when an overlay is fixed.
func (e *Engine) OnFixed(fn func(Snapshot)) { e.onFixed = fn }

// Add inserts an overlay into the set.
func (e *Engine) Add(o *Overlay) {
	e.overlays = append(e.overlays, o)
}

// Get returns the overlay with the given id.
func (e *Engine) Get(id string) (*Overlay, bool) {
	for _, o := range e.overlays {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Overlays returns the overlay set in insertion order.
func (e *Engine) Overlays() []*Overlay {
	return e.overlays
}

// Remove deletes the overlay with the given id, ending its gesture if one is
// active.
func (e *Engine) Remove(id string) bool {
	for i, o := range e.overlays {
		if o.ID == id {
			if e.gesture.id == id {
				e.gesture = gesture{}
			}
			e.overlays = append(e.overlays[:i], e.overlays[i+1:]...)
			return true
		}
	}
	return false
}

// Active returns the kind and target of the current gesture, if any.
func (e *Engine) Active() (GestureKind, string) {
	return e.gesture.kind, e.gesture.id
}

// BeginDrag starts a drag gesture at the given pointer screen position.
// Rejected for fixed overlays and while another gesture is active.
func (e *Engine) BeginDrag(id string, pointer geometry.Point2D) bool {
	o, ok := e.target(id)
	if !ok {
		return false
	}
	e.gesture = gesture{
		kind: GestureDrag,
		id:   o.ID,
		last: vec(pointer),
	}
	return true
}

// BeginResize starts a resize gesture, capturing the overlay's screen anchor,
// its current scale, and the initial pointer-to-anchor distance.
func (e *Engine) BeginResize(id string, pointer geometry.Point2D, proj Projector) bool {
	o, ok := e.target(id)
	if !ok {
		return false
	}
	anchor := vec(proj.Project(o.Anchor))
	dist := r2.Norm(r2.Sub(vec(pointer), anchor))
	if dist < 1 {
		// Pointer on top of the anchor gives no usable ratio baseline.
		dist = 1
	}
	e.gesture = gesture{
		kind:       GestureResize,
		id:         o.ID,
		anchorPx:   anchor,
		startDist:  dist,
		startScale: o.Scale,
	}
	return true
}

// BeginRotate starts a rotate gesture, capturing the initial pointer angle
// around the overlay's screen anchor and the current rotation.
func (e *Engine) BeginRotate(id string, pointer geometry.Point2D, proj Projector) bool {
	o, ok := e.target(id)
	if !ok {
		return false
	}
	anchor := vec(proj.Project(o.Anchor))
	off := r2.Sub(vec(pointer), anchor)
	e.gesture = gesture{
		kind:          GestureRotate,
		id:            o.ID,
		anchorPx:      anchor,
		startAngle:    math.Atan2(off.Y, off.X),
		startRotation: o.Rotation,
	}
	return true
}

// PointerMove advances the active gesture with a new pointer screen
// position. A no-op when no gesture is active.
func (e *Engine) PointerMove(pointer geometry.Point2D, proj Projector) {
	o, ok := e.Get(e.gesture.id)
	if !ok || e.gesture.kind == GestureNone {
		return
	}

	p := vec(pointer)
	switch e.gesture.kind {
	case GestureDrag:
		// Delta from the previous move, not from the gesture start: the
		// translation stays drift-free while the projection shifts.
		delta := r2.Sub(p, e.gesture.last)
		anchorPx := vec(proj.Project(o.Anchor))
		o.Anchor = proj.Unproject(point(r2.Add(anchorPx, delta)))
		e.gesture.last = p

	case GestureResize:
		dist := r2.Norm(r2.Sub(p, e.gesture.anchorPx))
		scale := e.gesture.startScale * dist / e.gesture.startDist
		o.Scale = math.Max(MinScale, scale)

	case GestureRotate:
		off := r2.Sub(p, e.gesture.anchorPx)
		angle := math.Atan2(off.Y, off.X)
		deltaDeg := (angle - e.gesture.startAngle) * 180 / math.Pi
		o.Rotation = geometry.NormalizeDegrees(e.gesture.startRotation + deltaDeg)
	}

	if e.onUpdated != nil {
		e.onUpdated(o)
	}
}

// PointerUp ends the active gesture unconditionally, wherever on screen the
// pointer landed.
func (e *Engine) PointerUp() {
	e.gesture = gesture{}
}

// Fix freezes the overlay: its handles disappear and every future gesture on
// it is rejected. Irreversible within the session; the anchor keeps
// re-projecting on viewport changes. The host receives a snapshot.
func (e *Engine) Fix(id string) bool {
	o, ok := e.Get(id)
	if !ok || o.Fixed {
		return false
	}
	if e.gesture.id == id {
		e.gesture = gesture{}
	}
	o.Fixed = true
	if e.onFixed != nil {
		e.onFixed(Snapshot{ID: o.ID, Content: o.Content, Anchor: o.Anchor})
	}
	return true
}

// target resolves a gesture target, enforcing exclusivity and the fixed
// flag.
func (e *Engine) target(id string) (*Overlay, bool) {
	if e.gesture.kind != GestureNone {
		return nil, false
	}
	o, ok := e.Get(id)
	if !ok || o.Fixed {
		return nil, false
	}
	return o, true
}

func vec(p geometry.Point2D) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func point(v r2.Vec) geometry.Point2D {
	return geometry.Point2D{X: v.X, Y: v.Y}
}
