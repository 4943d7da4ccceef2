// Package app provides application state, the event bus, and the host-level
// operations that tie the editing engines to the data layer and store.
package app

import (
	"fmt"
	"log"
	"sync"

	"site-planner/internal/content"
	"site-planner/internal/drawing"
	"site-planner/internal/layout"
	"site-planner/internal/overlay"
	"site-planner/internal/sketch"
	"site-planner/internal/store"
	"site-planner/pkg/geometry"
)

// Role selects the user-facing mode: administrators edit, clients view.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// EventType identifies different application events. These are the host
// callbacks the editing core exposes upward.
type EventType int

const (
	EventLayoutCreated EventType = iota
	EventLayoutUpdated
	EventLayoutDeleted
	EventPlotAdded
	EventPlotUpdated
	EventPlotRemoved
	EventOverlayAdded
	EventOverlayUpdated
	EventOverlayFixed
	EventSketchSaved
	EventDrawingChanged
	EventDrawingFinished
	EventDrawingCancelled
	EventSelectionChanged
	EventSubdivisionChanged
	EventRoleChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the application state: the layout collection, the editing
// engines, and the persistence store. All mutations run synchronously inside
// UI event handlers; persistence is best-effort and never blocks an edit.
type State struct {
	mu sync.RWMutex

	Layouts  *layout.Collection
	Overlays *overlay.Engine
	Drawing  *drawing.Machine
	Sketch   *sketch.Session

	store    *store.Store
	role     Role
	modified bool

	// Layout id of the active subdivision session; zero when drawing
	// top-level layouts.
	subdividing int

	listeners map[EventType][]EventListener
}

// NewState creates the application state, loading any persisted layouts.
func NewState(st *store.Store) *State {
	s := &State{
		Layouts:   layout.NewCollection(),
		Overlays:  overlay.NewEngine(),
		Drawing:   drawing.NewMachine(),
		Sketch:    sketch.NewSession(),
		store:     st,
		role:      RoleAdmin,
		listeners: make(map[EventType][]EventListener),
	}
	s.Layouts.Replace(st.LoadLayouts())

	s.Overlays.OnUpdated(func(o *overlay.Overlay) {
		s.Emit(EventOverlayUpdated, o)
	})
	s.Overlays.OnFixed(func(snap overlay.Snapshot) {
		s.Emit(EventOverlayFixed, snap)
	})
	s.Sketch.OnSaved(func(snap sketch.Snapshot) {
		s.Emit(EventSketchSaved, snap)
	})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Role returns the active role.
func (s *State) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// SetRole switches between administrator and client mode.
func (s *State) SetRole(r Role) {
	s.mu.Lock()
	s.role = r
	s.mu.Unlock()
	s.Emit(EventRoleChanged, r)
}

// CanEdit reports whether the current role may mutate anything.
func (s *State) CanEdit() bool { return s.Role() == RoleAdmin }

// setModified marks the session dirty and emits an event.
func (s *State) setModified() {
	s.mu.Lock()
	s.modified = true
	s.mu.Unlock()
	s.Emit(EventModified, true)
}

// StartDrawing begins a boundary drawing session.
func (s *State) StartDrawing() {
	if !s.CanEdit() {
		return
	}
	s.Drawing.Start()
	s.Emit(EventDrawingChanged, nil)
}

// AddDrawingPoint appends a clicked geographic point to the session.
func (s *State) AddDrawingPoint(p geometry.GeoPoint) {
	if s.Drawing.AddPoint(p) {
		s.Emit(EventDrawingChanged, nil)
	}
}

// CancelDrawing aborts the session, discarding all preview state.
func (s *State) CancelDrawing() {
	s.Drawing.Cancel()
	s.Emit(EventDrawingCancelled, nil)
	s.Emit(EventDrawingChanged, nil)
}

// FinishDrawing finalizes the session. In a subdivision session the boundary
// becomes a plot of the entered layout; otherwise it becomes a new layout
// with default status Available. A no-op below three points.
func (s *State) FinishDrawing() bool {
	boundary, ok := s.Drawing.Finish()
	if !ok {
		return false
	}

	if s.subdividing != 0 {
		parent, ok := s.Layouts.Get(s.subdividing)
		if !ok {
			return false
		}
		p, err := layout.NewPlot(fmt.Sprintf("%d", len(parent.Plots)+1), boundary)
		if err != nil {
			return false
		}
		s.Layouts.AddPlot(s.subdividing, p)
		s.Emit(EventPlotAdded, p)
	} else {
		name := fmt.Sprintf("Layout %d", s.Layouts.NextID())
		l, err := s.Layouts.Add(name, boundary)
		if err != nil {
			return false
		}
		s.Layouts.Select(l.ID)
		s.Emit(EventLayoutCreated, l)
		s.Emit(EventSelectionChanged, l.ID)
	}

	s.Emit(EventDrawingFinished, boundary)
	s.Emit(EventDrawingChanged, nil)
	s.persist()
	return true
}

// EnterSubdivision opens a layout for plot drawing.
func (s *State) EnterSubdivision(layoutID int) bool {
	if _, ok := s.Layouts.Get(layoutID); !ok {
		return false
	}
	s.subdividing = layoutID
	s.Emit(EventSubdivisionChanged, layoutID)
	return true
}

// ExitSubdivision returns to top-level editing, cancelling any in-progress
// drawing.
func (s *State) ExitSubdivision() {
	if s.Drawing.State() == drawing.StateDrawing {
		s.CancelDrawing()
	}
	s.subdividing = 0
	s.Emit(EventSubdivisionChanged, 0)
}

// Subdividing returns the layout id of the active subdivision session, or
// zero.
func (s *State) Subdividing() int { return s.subdividing }

// SelectLayout marks a layout selected.
func (s *State) SelectLayout(id int) {
	s.Layouts.Select(id)
	s.Emit(EventSelectionChanged, id)
}

// UpdateLayout replaces a layout record after a form edit.
func (s *State) UpdateLayout(l layout.Layout) bool {
	if !s.CanEdit() || !s.Layouts.Update(l) {
		return false
	}
	s.Emit(EventLayoutUpdated, l)
	s.persist()
	return true
}

// DeleteLayout removes a layout and its plots. The UI must have confirmed
// the destructive action before calling this.
func (s *State) DeleteLayout(id int) bool {
	if !s.CanEdit() || !s.Layouts.Delete(id) {
		return false
	}
	if s.subdividing == id {
		s.ExitSubdivision()
	}
	s.Emit(EventLayoutDeleted, id)
	s.Emit(EventSelectionChanged, s.Layouts.SelectedID())
	s.persist()
	return true
}

// UpdatePlot replaces a plot record inside its layout, driven by the
// debounced details form.
func (s *State) UpdatePlot(layoutID int, p layout.Plot) bool {
	if !s.CanEdit() || !s.Layouts.UpdatePlot(layoutID, p) {
		return false
	}
	s.Emit(EventPlotUpdated, p)
	s.persist()
	return true
}

// ErasePlotAt removes the plot of the subdivided layout containing the
// clicked point, if any.
func (s *State) ErasePlotAt(p geometry.GeoPoint) bool {
	if !s.CanEdit() || s.subdividing == 0 {
		return false
	}
	plot, ok := s.Layouts.PlotAt(s.subdividing, p)
	if !ok {
		return false
	}
	s.Layouts.RemovePlot(s.subdividing, plot.ID)
	s.Emit(EventPlotRemoved, plot)
	s.persist()
	return true
}

// AddOverlay validates the payload and anchors a new overlay at the given
// point. Invalid content is reported to the caller and nothing is applied.
func (s *State) AddOverlay(c content.Content, anchor geometry.GeoPoint) (*overlay.Overlay, error) {
	if err := content.Validate(c); err != nil {
		return nil, err
	}
	o := overlay.New(c, anchor)
	s.Overlays.Add(o)
	s.Emit(EventOverlayAdded, o)
	s.setModified()
	return o, nil
}

// FixOverlay freezes an overlay into a static annotation.
func (s *State) FixOverlay(id string) bool {
	return s.Overlays.Fix(id)
}

// persist saves the layout list. Failures are logged and never surfaced as
// blocking errors; the in-memory state remains authoritative.
func (s *State) persist() {
	s.setModified()
	if s.store == nil {
		return
	}
	if err := s.store.SaveLayouts(s.Layouts.All()); err != nil {
		log.Printf("app: save layouts: %v", err)
	}
}
