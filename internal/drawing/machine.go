// Package drawing implements the polygon drawing state machine: it
// accumulates clicked geographic points into a candidate boundary and
// finalizes them into an ordered sequence once at least three exist.
package drawing

import "site-planner/pkg/geometry"

// State identifies the machine's current mode.
type State int

const (
	// StateIdle means no drawing session is active.
	StateIdle State = iota
	// StateDrawing means points are being accumulated.
	StateDrawing
)

// Machine accumulates an ordered point buffer during a drawing session. It
// produces point sequences only; it never persists anything itself.
type Machine struct {
	state  State
	points []geometry.GeoPoint
}

// NewMachine creates an idle drawing machine.
func NewMachine() *Machine {
	return &Machine{}
}

// State returns the current machine state.
func (m *Machine) State() State { return m.state }

// Start begins a drawing session, discarding any stale point buffer.
func (m *Machine) Start() {
	m.state = StateDrawing
	m.points = nil
}

// AddPoint appends a clicked geographic point to the buffer. Returns false
// when no session is active.
func (m *Machine) AddPoint(p geometry.GeoPoint) bool {
	if m.state != StateDrawing {
		return false
	}
	m.points = append(m.points, p)
	return true
}

// CanFinish reports whether the buffer holds enough points to close a
// boundary. The UI disables the finish action while this is false.
func (m *Machine) CanFinish() bool {
	return m.state == StateDrawing && geometry.ValidBoundary(m.points)
}

// Finish finalizes the session and returns the ordered point sequence.
// With fewer than three points (or outside a session) it is a no-op: it
// returns (nil, false) and the buffer is unchanged.
func (m *Machine) Finish() ([]geometry.GeoPoint, bool) {
	if !m.CanFinish() {
		return nil, false
	}
	boundary := m.points
	m.points = nil
	m.state = StateIdle
	return boundary, true
}

// Cancel aborts the session, clearing the buffer and returning to idle.
func (m *Machine) Cancel() {
	m.state = StateIdle
	m.points = nil
}

// Points returns a copy of the in-progress point buffer for preview
// rendering.
func (m *Machine) Points() []geometry.GeoPoint {
	out := make([]geometry.GeoPoint, len(m.points))
	copy(out, m.points)
	return out
}
