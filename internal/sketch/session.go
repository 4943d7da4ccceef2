package sketch

import (
	"site-planner/pkg/geometry"

	"github.com/google/uuid"
)

// Session owns one canvas editing session: the shape set, the pencil trace,
// the active tool, and at most one drag gesture at a time.
type Session struct {
	shapes []*Shape
	points []DrawingPoint
	tool   Tool

	drag struct {
		active   bool
		resizing bool
		id       string
		last     geometry.Point2D
	}

	onSaved func(Snapshot)
}

// NewSession creates an empty sketch session with the select tool active.
func NewSession() *Session {
	return &Session{}
}

// OnSaved registers the host callback receiving the snapshot on save.
func (s *Session) OnSaved(fn func(Snapshot)) { s.onSaved = fn }

// SetTool switches the active tool.
func (s *Session) SetTool(tool Tool) { s.tool = tool }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// Shapes returns the shape set in creation order.
func (s *Session) Shapes() []*Shape { return s.shapes }

// Points returns the pencil trace in creation order.
func (s *Session) Points() []DrawingPoint { return s.points }

// Selected returns the currently selected shape, if any.
func (s *Session) Selected() (*Shape, bool) {
	for _, sh := range s.shapes {
		if sh.Selected {
			return sh, true
		}
	}
	return nil, false
}

// Click applies the active tool at a canvas position. Stamp tools create a
// shape centered at the click; pencil appends a trace point; select performs
// hit-testing; eraser removes the selected shape.
func (s *Session) Click(x, y float64) {
	switch s.tool {
	case ToolSelect:
		s.selectAt(x, y)
	case ToolPencil:
		s.points = append(s.points, DrawingPoint{ID: uuid.NewString(), X: x, Y: y})
	case ToolSquare, ToolRectangle, ToolRoad, ToolTree:
		s.shapes = append(s.shapes, newShape(s.tool, x, y))
	case ToolEraser:
		s.EraseSelected()
	}
}

// selectAt marks at most one shape selected, last-drawn-wins on overlap.
// Clicking empty space clears the selection.
func (s *Session) selectAt(x, y float64) {
	hit := s.HitTest(x, y)
	for _, sh := range s.shapes {
		sh.Selected = sh == hit
	}
}

// HitTest returns the topmost shape whose bounding box contains the point,
// or nil. Later-drawn shapes win on overlap.
func (s *Session) HitTest(x, y float64) *Shape {
	p := geometry.NewPoint2D(x, y)
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if s.shapes[i].Bounds().Contains(p) {
			return s.shapes[i]
		}
	}
	return nil
}

// BeginDrag starts a drag gesture on the selected shape: on its resize
// handle if the pointer is over it, otherwise on its body. Returns false if
// the pointer hits neither.
func (s *Session) BeginDrag(x, y float64) bool {
	sh, ok := s.Selected()
	if !ok {
		return false
	}
	p := geometry.NewPoint2D(x, y)
	switch {
	case sh.HandleBounds().Contains(p):
		s.drag.resizing = true
	case sh.Bounds().Contains(p):
		s.drag.resizing = false
	default:
		return false
	}
	s.drag.active = true
	s.drag.id = sh.ID
	s.drag.last = p
	return true
}

// DragTo advances the active gesture: body drags translate by the delta from
// the previous position; handle drags grow width/height with a floor of
// MinShapeSize in each dimension.
func (s *Session) DragTo(x, y float64) {
	if !s.drag.active {
		return
	}
	sh := s.byID(s.drag.id)
	if sh == nil {
		s.drag.active = false
		return
	}

	p := geometry.NewPoint2D(x, y)
	dx, dy := p.X-s.drag.last.X, p.Y-s.drag.last.Y
	if s.drag.resizing {
		sh.Width = maxFloat(MinShapeSize, sh.Width+dx)
		sh.Height = maxFloat(MinShapeSize, sh.Height+dy)
	} else {
		sh.X += dx
		sh.Y += dy
	}
	s.drag.last = p
}

// EndDrag clears the gesture state unconditionally.
func (s *Session) EndDrag() {
	s.drag.active = false
	s.drag.resizing = false
	s.drag.id = ""
}

// EraseSelected removes the selected shape, ending any gesture on it.
func (s *Session) EraseSelected() bool {
	for i, sh := range s.shapes {
		if sh.Selected {
			if s.drag.id == sh.ID {
				s.EndDrag()
			}
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			return true
		}
	}
	return false
}

// Save emits the full canvas snapshot to the host.
func (s *Session) Save() Snapshot {
	snap := Snapshot{
		Shapes: make([]Shape, len(s.shapes)),
		Points: make([]DrawingPoint, len(s.points)),
	}
	for i, sh := range s.shapes {
		snap.Shapes[i] = *sh
	}
	copy(snap.Points, s.points)

	if s.onSaved != nil {
		s.onSaved(snap)
	}
	return snap
}

// Clear empties both collections and the selection.
func (s *Session) Clear() {
	s.shapes = nil
	s.points = nil
	s.EndDrag()
}

func (s *Session) byID(id string) *Shape {
	for _, sh := range s.shapes {
		if sh.ID == id {
			return sh
		}
	}
	return nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
