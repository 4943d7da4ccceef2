package canvas

import (
	"image"
	"image/color"
	"log"
	"os"

	"site-planner/internal/sketch"
	"site-planner/pkg/colorutil"
	"site-planner/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"
)

// Fill colors per shape kind, used when a shape arrives without one (the
// color is not part of the saved snapshot).
var kindColors = map[sketch.Kind]color.RGBA{
	sketch.KindSquare:    {R: 0xB0, G: 0x8A, B: 0x5A, A: 0xFF},
	sketch.KindRectangle: {R: 0x8A, G: 0x9A, B: 0xB0, A: 0xFF},
	sketch.KindRoad:      {R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
	sketch.KindTree:      {R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF},
}

// SketchCanvas is the schematic drawing surface. It renders an optional
// background image, the stamped shapes, and the freehand pencil trace, and
// routes pointer events into the sketch session.
type SketchCanvas struct {
	widget.BaseWidget

	session *sketch.Session
	raster  *fynecanvas.Raster
	content *sketchContent

	background *image.RGBA
	bgPath     string
}

// NewSketchCanvas creates the sketch canvas bound to a session. backgroundPath
// may name an image file drawn under the shapes; empty means a plain surface.
func NewSketchCanvas(session *sketch.Session, backgroundPath string) *SketchCanvas {
	sc := &SketchCanvas{
		session: session,
		bgPath:  backgroundPath,
	}
	sc.raster = fynecanvas.NewRaster(sc.render)
	sc.raster.ScaleMode = fynecanvas.ImageScalePixels
	sc.content = newSketchContent(sc)
	sc.ExtendBaseWidget(sc)
	return sc
}

// SetTool switches the session's active tool.
func (sc *SketchCanvas) SetTool(tool sketch.Tool) {
	sc.session.SetTool(tool)
	sc.Refresh()
}

// Refresh redraws the sketch surface.
func (sc *SketchCanvas) Refresh() {
	sc.raster.Refresh()
}

func (sc *SketchCanvas) render(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	if bg := sc.backgroundFor(w, h); bg != nil {
		copy(out.Pix, bg.Pix)
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.SetRGBA(x, y, colorutil.White)
			}
		}
	}

	for _, sh := range sc.session.Shapes() {
		drawShape(out, sh)
	}

	sc.drawTrace(out)
	return out
}

// backgroundFor returns the background scaled to the surface size, reloading
// only when the size changes.
func (sc *SketchCanvas) backgroundFor(w, h int) *image.RGBA {
	if sc.bgPath == "" {
		return nil
	}
	if sc.background != nil && sc.background.Bounds().Dx() == w && sc.background.Bounds().Dy() == h {
		return sc.background
	}

	f, err := os.Open(sc.bgPath)
	if err != nil {
		log.Printf("canvas: open sketch background: %v", err)
		sc.bgPath = ""
		return nil
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		log.Printf("canvas: decode sketch background: %v", err)
		sc.bgPath = ""
		return nil
	}

	sc.background = image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(sc.background, sc.background.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return sc.background
}

// drawShape renders one schematic shape with its kind's iconography, plus
// selection chrome when selected.
func drawShape(out *image.RGBA, sh *sketch.Shape) {
	fill := sh.Color
	if fill.A == 0 {
		fill = kindColors[sh.Kind]
	}
	r := sh.Bounds()

	switch sh.Kind {
	case sketch.KindTree:
		// Trunk below a round canopy.
		trunk := color.RGBA{R: 0x6D, G: 0x4C, B: 0x33, A: 0xFF}
		fillRect(out, geometry.NewRect(r.X+r.Width/2-2, r.Y+r.Height/2, 4, r.Height/2), trunk)
		fillCircle(out, r.X+r.Width/2, r.Y+r.Height/3, r.Width/2.5, fill)
	case sketch.KindRoad:
		fillRect(out, r, fill)
		cy := int(r.Y + r.Height/2)
		drawLine(out, int(r.X), cy, int(r.X+r.Width), cy, colorutil.White, 2, 5)
	default:
		fillRect(out, r, fill)
		strokeRect(out, r, colorutil.Black, 1)
	}

	if sh.Selected {
		strokeRect(out, r, colorutil.Yellow, 2)
		drawHandle(out, r.BottomRight(), colorutil.Yellow)
	}
}

// drawTrace renders the pencil polyline with small vertex dots.
func (sc *SketchCanvas) drawTrace(out *image.RGBA) {
	points := sc.session.Points()
	for i := 1; i < len(points); i++ {
		drawLine(out, int(points[i-1].X), int(points[i-1].Y), int(points[i].X), int(points[i].Y),
			colorutil.Black, 2, 0)
	}
	for _, p := range points {
		fillCircle(out, p.X, p.Y, 3, colorutil.Black)
	}
}

// CreateRenderer implements fyne.Widget.
func (sc *SketchCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &sketchCanvasRenderer{canvas: sc}
}

type sketchCanvasRenderer struct {
	canvas *SketchCanvas
}

func (r *sketchCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.content.Resize(size)
}

func (r *sketchCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *sketchCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *sketchCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *sketchCanvasRenderer) Destroy() {}

// sketchContent wraps the raster to receive pointer events.
type sketchContent struct {
	widget.BaseWidget
	canvas *SketchCanvas
}

func newSketchContent(sc *SketchCanvas) *sketchContent {
	c := &sketchContent{canvas: sc}
	c.ExtendBaseWidget(c)
	return c
}

var (
	_ fyne.Tappable     = (*sketchContent)(nil)
	_ fyne.Draggable    = (*sketchContent)(nil)
	_ desktop.Mouseable = (*sketchContent)(nil)
)

// MouseDown starts a drag on the selected shape's handle or body under the
// select tool.
func (c *sketchContent) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	if c.canvas.session.Tool() != sketch.ToolSelect {
		return
	}
	c.canvas.session.BeginDrag(float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseUp ends any active drag.
func (c *sketchContent) MouseUp(_ *desktop.MouseEvent) {
	c.canvas.session.EndDrag()
}

// Tapped applies the active tool at the clicked position.
func (c *sketchContent) Tapped(ev *fyne.PointEvent) {
	c.canvas.session.Click(float64(ev.Position.X), float64(ev.Position.Y))
	c.canvas.Refresh()
}

// Dragged advances the active drag gesture.
func (c *sketchContent) Dragged(ev *fyne.DragEvent) {
	c.canvas.session.DragTo(float64(ev.Position.X), float64(ev.Position.Y))
	c.canvas.Refresh()
}

// DragEnd ends any active drag; either this or MouseUp may arrive last.
func (c *sketchContent) DragEnd() {
	c.canvas.session.EndDrag()
}

func (c *sketchContent) CreateRenderer() fyne.WidgetRenderer {
	return &sketchContentRenderer{content: c}
}

type sketchContentRenderer struct {
	content *sketchContent
}

func (r *sketchContentRenderer) Layout(size fyne.Size) {
	r.content.canvas.raster.Resize(size)
}

func (r *sketchContentRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *sketchContentRenderer) Refresh() {
	r.content.canvas.raster.Refresh()
}

func (r *sketchContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.canvas.raster}
}

func (r *sketchContentRenderer) Destroy() {}
