package canvas

import (
	"image"

	"site-planner/internal/app"
	"site-planner/internal/overlay"
	"site-planner/internal/viewport"
	"site-planner/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Tool represents the current map interaction tool.
type Tool int

const (
	ToolPan Tool = iota
	ToolDraw
	ToolErase
)

// Base overlay side length in pixels at scale 1.0.
const overlayBaseSize = 96.0

// Rotate handle offset above the overlay's bounding box.
const rotateHandleOffset = 18.0

// MapCanvas is the interactive map surface. It renders the graticule base,
// layout and plot polygons, the drawing preview, and overlays; and routes
// pointer events into the drawing machine and the overlay engine.
type MapCanvas struct {
	widget.BaseWidget

	state *app.State
	view  *viewport.Viewport

	raster  *fynecanvas.Raster
	content *mapContent
	tool    Tool

	// Rasterized overlay content keyed by overlay id.
	baseCache map[string]*image.RGBA

	// onFixRequest is called when the user asks to fix an overlay
	// (right-click). The window shows the confirmation dialog.
	onFixRequest func(overlayID string)
}

// NewMapCanvas creates the map canvas bound to the application state.
func NewMapCanvas(state *app.State, view *viewport.Viewport) *MapCanvas {
	mc := &MapCanvas{
		state:     state,
		view:      view,
		baseCache: make(map[string]*image.RGBA),
	}

	mc.raster = fynecanvas.NewRaster(mc.render)
	mc.raster.ScaleMode = fynecanvas.ImageScalePixels
	mc.content = newMapContent(mc)

	// Overlays never cache pixel positions: every viewport change triggers
	// a full re-projection pass.
	view.OnChange(mc.Refresh)

	for _, ev := range []app.EventType{
		app.EventLayoutCreated, app.EventLayoutUpdated, app.EventLayoutDeleted,
		app.EventPlotAdded, app.EventPlotUpdated, app.EventPlotRemoved,
		app.EventOverlayAdded, app.EventOverlayUpdated, app.EventOverlayFixed,
		app.EventDrawingChanged, app.EventSelectionChanged, app.EventSubdivisionChanged,
	} {
		state.On(ev, func(interface{}) { mc.Refresh() })
	}

	mc.ExtendBaseWidget(mc)
	return mc
}

// SetTool sets the current interaction tool.
func (mc *MapCanvas) SetTool(tool Tool) { mc.tool = tool }

// GetTool returns the current interaction tool.
func (mc *MapCanvas) GetTool() Tool { return mc.tool }

// OnFixRequest sets the callback invoked when the user asks to fix an
// overlay.
func (mc *MapCanvas) OnFixRequest(fn func(overlayID string)) { mc.onFixRequest = fn }

// Refresh redraws the map surface.
func (mc *MapCanvas) Refresh() {
	mc.raster.Refresh()
}

// overlayRect returns the overlay's rendered bounding box in screen space,
// derived from its geographic anchor through the current projection.
func (mc *MapCanvas) overlayRect(o *overlay.Overlay) geometry.Rect {
	anchor := mc.view.Project(o.Anchor)
	size := overlayBaseSize * o.Scale
	return geometry.NewRect(anchor.X-size/2, anchor.Y-size/2, size, size)
}

// resizeHandlePos returns the center of the resize handle.
func (mc *MapCanvas) resizeHandlePos(r geometry.Rect) geometry.Point2D {
	return r.BottomRight()
}

// rotateHandlePos returns the center of the rotate handle.
func (mc *MapCanvas) rotateHandlePos(r geometry.Rect) geometry.Point2D {
	return geometry.NewPoint2D(r.X+r.Width/2, r.Y-rotateHandleOffset)
}

func handleHit(center geometry.Point2D, p geometry.Point2D) bool {
	const half = 7.0
	return geometry.NewRect(center.X-half, center.Y-half, 2*half, 2*half).Contains(p)
}

// overlayAt returns the topmost manipulable overlay under the pointer,
// considering body and handles. Fixed overlays are ignored.
func (mc *MapCanvas) overlayAt(p geometry.Point2D) (*overlay.Overlay, bool) {
	list := mc.state.Overlays.Overlays()
	for i := len(list) - 1; i >= 0; i-- {
		o := list[i]
		if o.Fixed {
			continue
		}
		r := mc.overlayRect(o)
		if r.Contains(p) || handleHit(mc.resizeHandlePos(r), p) || handleHit(mc.rotateHandlePos(r), p) {
			return o, true
		}
	}
	return nil, false
}

// CreateRenderer implements fyne.Widget.
func (mc *MapCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &mapCanvasRenderer{canvas: mc}
}

type mapCanvasRenderer struct {
	canvas *MapCanvas
}

func (r *mapCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.content.Resize(size)
	r.canvas.view.Resize(float64(size.Width), float64(size.Height))
}

func (r *mapCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *mapCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *mapCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *mapCanvasRenderer) Destroy() {}

// mapContent wraps the raster to receive pointer events.
type mapContent struct {
	widget.BaseWidget
	canvas *MapCanvas
}

func newMapContent(mc *MapCanvas) *mapContent {
	c := &mapContent{canvas: mc}
	c.ExtendBaseWidget(c)
	return c
}

var (
	_ fyne.Tappable          = (*mapContent)(nil)
	_ fyne.SecondaryTappable = (*mapContent)(nil)
	_ fyne.Draggable         = (*mapContent)(nil)
	_ fyne.Scrollable        = (*mapContent)(nil)
	_ desktop.Mouseable      = (*mapContent)(nil)
)

func pointOf(pos fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(pos.X), float64(pos.Y))
}

// MouseDown starts an overlay gesture when the press lands on a manipulable
// overlay's handle or body. Beginning a gesture keeps the press from also
// panning the map.
func (c *mapContent) MouseDown(ev *desktop.MouseEvent) {
	mc := c.canvas
	if ev.Button != desktop.MouseButtonPrimary || !mc.state.CanEdit() {
		return
	}

	p := pointOf(ev.Position)
	list := mc.state.Overlays.Overlays()
	for i := len(list) - 1; i >= 0; i-- {
		o := list[i]
		if o.Fixed {
			continue
		}
		r := mc.overlayRect(o)
		switch {
		case handleHit(mc.resizeHandlePos(r), p):
			mc.state.Overlays.BeginResize(o.ID, p, mc.view)
			return
		case handleHit(mc.rotateHandlePos(r), p):
			mc.state.Overlays.BeginRotate(o.ID, p, mc.view)
			return
		case r.Contains(p):
			mc.state.Overlays.BeginDrag(o.ID, p)
			return
		}
	}
}

// MouseUp ends any active gesture, wherever the release lands.
func (c *mapContent) MouseUp(_ *desktop.MouseEvent) {
	c.canvas.state.Overlays.PointerUp()
}

// Dragged routes pointer movement: to the active overlay gesture if one
// exists, otherwise to map panning under the pan tool.
func (c *mapContent) Dragged(ev *fyne.DragEvent) {
	mc := c.canvas
	if kind, _ := mc.state.Overlays.Active(); kind != overlay.GestureNone {
		mc.state.Overlays.PointerMove(pointOf(ev.Position), mc.view)
		mc.Refresh()
		return
	}
	if mc.tool == ToolPan {
		mc.view.PanBy(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	}
}

// DragEnd is the second half of the gesture teardown path; pointer capture
// may deliver either this or MouseUp last.
func (c *mapContent) DragEnd() {
	c.canvas.state.Overlays.PointerUp()
}

// Tapped applies the active tool at the clicked position, translated to
// geographic coordinates. Clicks over a manipulable overlay are swallowed so
// the map below doesn't also react.
func (c *mapContent) Tapped(ev *fyne.PointEvent) {
	mc := c.canvas
	p := pointOf(ev.Position)

	if mc.state.CanEdit() {
		if _, hit := mc.overlayAt(p); hit {
			return
		}
	}

	geo := mc.view.Unproject(p)
	switch mc.tool {
	case ToolDraw:
		if mc.state.CanEdit() {
			mc.state.AddDrawingPoint(geo)
		}
	case ToolErase:
		mc.state.ErasePlotAt(geo)
	case ToolPan:
		if l, ok := mc.state.Layouts.LayoutAt(geo); ok {
			mc.state.SelectLayout(l.ID)
		}
	}
}

// TappedSecondary asks the window to fix the overlay under the pointer.
func (c *mapContent) TappedSecondary(ev *fyne.PointEvent) {
	mc := c.canvas
	if !mc.state.CanEdit() || mc.onFixRequest == nil {
		return
	}
	if o, ok := mc.overlayAt(pointOf(ev.Position)); ok {
		mc.onFixRequest(o.ID)
	}
}

// Scrolled zooms the viewport with the wheel.
func (c *mapContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		c.canvas.view.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		c.canvas.view.ZoomOut()
	}
}

func (c *mapContent) CreateRenderer() fyne.WidgetRenderer {
	return &mapContentRenderer{content: c}
}

type mapContentRenderer struct {
	content *mapContent
}

func (r *mapContentRenderer) Layout(size fyne.Size) {
	r.content.canvas.raster.Resize(size)
}

func (r *mapContentRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *mapContentRenderer) Refresh() {
	r.content.canvas.raster.Refresh()
}

func (r *mapContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.canvas.raster}
}

func (r *mapContentRenderer) Destroy() {}
