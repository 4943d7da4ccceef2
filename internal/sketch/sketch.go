// Package sketch implements the schematic shape canvas: a
// viewport-independent drawing surface in plain pixel coordinates for
// placing and manipulating simple iconographic shapes and freehand pencil
// traces. Nothing here has geographic meaning.
package sketch

import (
	"image/color"

	"site-planner/pkg/geometry"

	"github.com/google/uuid"
)

// Kind identifies a shape's iconography.
type Kind string

const (
	KindSquare    Kind = "square"
	KindRectangle Kind = "rectangle"
	KindRoad      Kind = "road"
	KindTree      Kind = "tree"
)

// Tool is the active canvas tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPencil
	ToolSquare
	ToolRectangle
	ToolRoad
	ToolTree
	ToolEraser
)

// MinShapeSize is the floor for each dimension during interactive resize.
const MinShapeSize = 20.0

// HandleSize is the side length of the bottom-right resize handle's hit
// area.
const HandleSize = 12.0

// Shape is a schematic element in canvas pixel space. X/Y is the top-left
// corner.
type Shape struct {
	ID       string     `json:"id"`
	Kind     Kind       `json:"kind"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Rotation float64    `json:"rotation"`
	Color    color.RGBA `json:"-"`
	Selected bool       `json:"selected"`
}

// Bounds returns the shape's axis-aligned bounding box.
func (s *Shape) Bounds() geometry.Rect {
	return geometry.NewRect(s.X, s.Y, s.Width, s.Height)
}

// HandleBounds returns the hit area of the bottom-right resize handle.
func (s *Shape) HandleBounds() geometry.Rect {
	br := s.Bounds().BottomRight()
	return geometry.NewRect(br.X-HandleSize/2, br.Y-HandleSize/2, HandleSize, HandleSize)
}

// DrawingPoint is one vertex of the freehand pencil trace, connected to its
// neighbors by straight segments in creation order.
type DrawingPoint struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Snapshot is the full canvas contents emitted to the host on save.
type Snapshot struct {
	Shapes []Shape        `json:"shapes"`
	Points []DrawingPoint `json:"drawingPoints"`
}

// Default stamp dimensions and colors per tool.
var stampDefaults = map[Tool]struct {
	kind          Kind
	width, height float64
	color         color.RGBA
}{
	ToolSquare:    {KindSquare, 60, 60, color.RGBA{R: 0xB0, G: 0x8A, B: 0x5A, A: 0xFF}},
	ToolRectangle: {KindRectangle, 100, 60, color.RGBA{R: 0x8A, G: 0x9A, B: 0xB0, A: 0xFF}},
	ToolRoad:      {KindRoad, 140, 28, color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}},
	ToolTree:      {KindTree, 40, 40, color.RGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF}},
}

func newShape(tool Tool, x, y float64) *Shape {
	d := stampDefaults[tool]
	return &Shape{
		ID:     uuid.NewString(),
		Kind:   d.kind,
		X:      x - d.width/2,
		Y:      y - d.height/2,
		Width:  d.width,
		Height: d.height,
		Color:  d.color,
	}
}
