// Package mainwindow assembles the application window: toolbars, the map and
// sketch canvases, and the sidebar panels.
package mainwindow

import (
	"log"

	"site-planner/internal/app"
	"site-planner/internal/content"
	"site-planner/internal/sketch"
	"site-planner/internal/viewport"
	"site-planner/ui/canvas"
	"site-planner/ui/panels"
	"site-planner/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the application shell.
type MainWindow struct {
	window fyne.Window
	state  *app.State
	view   *viewport.Viewport
	prefs  *prefs.Prefs

	mapCanvas    *canvas.MapCanvas
	sketchCanvas *canvas.SketchCanvas

	finishBtn *widget.ToolbarAction
	cancelBtn *widget.ToolbarAction
	roleBtn   *widget.Button
	toolbar   *widget.Toolbar
	statusBar *widget.Label
}

// New assembles the main window.
func New(a fyne.App, state *app.State, view *viewport.Viewport, p *prefs.Prefs, sketchBackground string) *MainWindow {
	w := a.NewWindow("Site Planner")
	w.Resize(fyne.NewSize(1280, 800))

	mw := &MainWindow{
		window: w,
		state:  state,
		view:   view,
		prefs:  p,
	}

	mw.mapCanvas = canvas.NewMapCanvas(state, view)
	mw.sketchCanvas = canvas.NewSketchCanvas(state.Sketch, sketchBackground)
	mw.statusBar = widget.NewLabel("")

	mw.mapCanvas.OnFixRequest(mw.confirmFix)

	mapTab := container.NewBorder(mw.buildMapToolbar(), nil, nil, nil, mw.mapCanvas)
	sketchTab := container.NewBorder(mw.buildSketchToolbar(), nil, nil, nil, mw.sketchCanvas)

	tabs := container.NewAppTabs(
		container.NewTabItem("Map", mapTab),
		container.NewTabItem("Sketch", sketchTab),
	)

	sidebar := container.NewVSplit(
		panels.NewLayoutsPanel(state, view, w),
		panels.NewDetailsPanel(state),
	)
	sidebar.SetOffset(0.45)

	split := container.NewHSplit(tabs, sidebar)
	split.SetOffset(0.75)

	w.SetContent(container.NewBorder(nil, mw.statusBar, nil, nil, split))

	state.On(app.EventDrawingChanged, func(interface{}) { mw.syncDrawingActions() })
	state.On(app.EventSubdivisionChanged, func(data interface{}) {
		if id, ok := data.(int); ok && id != 0 {
			mw.setStatus("Subdividing: draw plot boundaries inside the layout")
		} else {
			mw.setStatus("")
		}
	})
	state.On(app.EventRoleChanged, func(interface{}) { mw.syncRole() })

	w.SetCloseIntercept(mw.close)
	return mw
}

// ShowAndRun displays the window and runs the event loop.
func (mw *MainWindow) ShowAndRun() {
	mw.window.ShowAndRun()
}

func (mw *MainWindow) setStatus(text string) {
	mw.statusBar.SetText(text)
}

// buildMapToolbar wires the map tools: pan, draw, finish, cancel, erase,
// overlay placement, and the role toggle.
func (mw *MainWindow) buildMapToolbar() fyne.CanvasObject {
	mw.finishBtn = widget.NewToolbarAction(theme.ConfirmIcon(), mw.finishDrawing)
	mw.cancelBtn = widget.NewToolbarAction(theme.CancelIcon(), mw.cancelDrawing)

	mw.toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.NavigateBackIcon(), func() {
			mw.mapCanvas.SetTool(canvas.ToolPan)
			mw.setStatus("")
		}),
		widget.NewToolbarAction(theme.ContentAddIcon(), mw.startDrawing),
		mw.finishBtn,
		mw.cancelBtn,
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			if mw.state.Subdividing() == 0 {
				mw.setStatus("Erase works inside a subdivision session")
				return
			}
			mw.mapCanvas.SetTool(canvas.ToolErase)
			mw.setStatus("Erase: click a plot to remove it")
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaPhotoIcon(), mw.showOverlayDialog),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomInIcon(), mw.view.ZoomIn),
		widget.NewToolbarAction(theme.ZoomOutIcon(), mw.view.ZoomOut),
	)

	mw.roleBtn = widget.NewButton("", mw.toggleRole)
	mw.syncRole()

	return container.NewBorder(nil, nil, nil, mw.roleBtn, mw.toolbar)
}

// buildSketchToolbar wires the schematic canvas tools.
func (mw *MainWindow) buildSketchToolbar() fyne.CanvasObject {
	tool := func(label string, t sketch.Tool) *widget.Button {
		return widget.NewButton(label, func() {
			mw.sketchCanvas.SetTool(t)
			mw.setStatus("")
		})
	}

	return container.NewHBox(
		tool("Select", sketch.ToolSelect),
		tool("Pencil", sketch.ToolPencil),
		tool("Square", sketch.ToolSquare),
		tool("Rectangle", sketch.ToolRectangle),
		tool("Road", sketch.ToolRoad),
		tool("Tree", sketch.ToolTree),
		tool("Eraser", sketch.ToolEraser),
		widget.NewSeparator(),
		widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
			mw.state.Sketch.Save()
			mw.setStatus("Sketch saved")
		}),
		widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), func() {
			dialog.NewConfirm("Clear Sketch", "Remove all shapes and pencil marks?",
				func(confirmed bool) {
					if confirmed {
						mw.state.Sketch.Clear()
						mw.sketchCanvas.Refresh()
					}
				}, mw.window).Show()
		}),
	)
}

// startDrawing begins a boundary session and arms the draw tool.
func (mw *MainWindow) startDrawing() {
	if !mw.state.CanEdit() {
		mw.setStatus("Viewing only: switch to admin to edit")
		return
	}
	mw.state.StartDrawing()
	mw.mapCanvas.SetTool(canvas.ToolDraw)
	if mw.state.Subdividing() != 0 {
		mw.setStatus("Click to add plot corners, then finish")
	} else {
		mw.setStatus("Click to add boundary corners, then finish")
	}
}

func (mw *MainWindow) finishDrawing() {
	if mw.state.FinishDrawing() {
		mw.mapCanvas.SetTool(canvas.ToolPan)
		mw.setStatus("")
	} else {
		mw.setStatus("A boundary needs at least 3 points")
	}
}

func (mw *MainWindow) cancelDrawing() {
	mw.state.CancelDrawing()
	mw.mapCanvas.SetTool(canvas.ToolPan)
	mw.setStatus("")
}

// syncDrawingActions enables finish/cancel according to the drawing session.
func (mw *MainWindow) syncDrawingActions() {
	if mw.state.Drawing.CanFinish() {
		mw.finishBtn.Enable()
	} else {
		mw.finishBtn.Disable()
	}
	mw.toolbar.Refresh()
}

// toggleRole flips between administrator and client mode.
func (mw *MainWindow) toggleRole() {
	if mw.state.Role() == app.RoleAdmin {
		mw.state.SetRole(app.RoleClient)
	} else {
		mw.state.SetRole(app.RoleAdmin)
	}
}

func (mw *MainWindow) syncRole() {
	if mw.roleBtn == nil {
		return
	}
	if mw.state.Role() == app.RoleAdmin {
		mw.roleBtn.SetText("Admin")
		mw.roleBtn.SetIcon(theme.AccountIcon())
	} else {
		mw.roleBtn.SetText("Client")
		mw.roleBtn.SetIcon(theme.VisibilityIcon())
	}
	mw.mapCanvas.Refresh()
}

// showOverlayDialog collects overlay content (inline markup or an image
// reference) and anchors it at the current map center.
func (mw *MainWindow) showOverlayDialog() {
	if !mw.state.CanEdit() {
		mw.setStatus("Viewing only: switch to admin to edit")
		return
	}

	markup := widget.NewMultiLineEntry()
	markup.SetPlaceHolder("<svg>...</svg>")
	markup.SetMinRowsVisible(6)

	url := widget.NewEntry()
	url.SetPlaceHolder("or a path/URL to an image")

	form := dialog.NewForm("Add Overlay", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Markup", markup),
			widget.NewFormItem("Image", url),
		},
		func(confirmed bool) {
			if !confirmed {
				return
			}
			c := content.Content{URL: url.Text, Markup: markup.Text}
			if _, err := mw.state.AddOverlay(c, mw.view.Center()); err != nil {
				dialog.ShowError(err, mw.window)
				return
			}
			mw.setStatus("Overlay added at map center; drag, resize, or rotate it")
		},
		mw.window,
	)
	form.Resize(fyne.NewSize(480, 360))
	form.Show()
}

// confirmFix asks before permanently freezing an overlay.
func (mw *MainWindow) confirmFix(overlayID string) {
	dialog.NewConfirm(
		"Fix Overlay",
		"Fix this overlay in place? It can no longer be moved, resized, or rotated.",
		func(confirmed bool) {
			if confirmed {
				mw.state.FixOverlay(overlayID)
			}
		},
		mw.window,
	).Show()
}

// close persists the session view before exiting.
func (mw *MainWindow) close() {
	center := mw.view.Center()
	mw.prefs.CenterLat = center.Lat
	mw.prefs.CenterLng = center.Lng
	mw.prefs.Zoom = mw.view.Zoom()
	mw.prefs.Role = string(mw.state.Role())
	if err := mw.prefs.Save(); err != nil {
		log.Printf("mainwindow: save preferences: %v", err)
	}
	mw.window.Close()
}
