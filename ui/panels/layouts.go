// Package panels provides the sidebar widgets: the layout list and the
// details editor.
package panels

import (
	"fmt"

	"site-planner/internal/app"
	"site-planner/internal/layout"
	"site-planner/internal/viewport"
	"site-planner/pkg/geometry"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// LayoutsPanel lists the layouts and carries the selection, subdivision, and
// delete actions.
type LayoutsPanel struct {
	widget.BaseWidget

	state  *app.State
	view   *viewport.Viewport
	window fyne.Window

	list      *widget.List
	subdivide *widget.Button
	delete    *widget.Button
	container *fyne.Container

	// Snapshot backing the list rows, refreshed on every data event.
	rows []layout.Layout
}

// NewLayoutsPanel creates the layout list panel.
func NewLayoutsPanel(state *app.State, view *viewport.Viewport, window fyne.Window) *LayoutsPanel {
	p := &LayoutsPanel{
		state:  state,
		view:   view,
		window: window,
	}

	p.list = widget.NewList(
		func() int { return len(p.rows) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.RadioButtonIcon()),
				widget.NewLabel("layout"),
			)
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i >= len(p.rows) {
				return
			}
			l := p.rows[i]
			box := obj.(*fyne.Container)
			icon := box.Objects[0].(*widget.Icon)
			label := box.Objects[1].(*widget.Label)

			if l.Status == layout.StatusSold {
				icon.SetResource(theme.ConfirmIcon())
			} else {
				icon.SetResource(theme.RadioButtonIcon())
			}
			label.SetText(fmt.Sprintf("%s (%d plots)", l.Name, len(l.Plots)))
		},
	)
	p.list.OnSelected = func(i widget.ListItemID) {
		if i >= len(p.rows) {
			return
		}
		l := p.rows[i]
		state.SelectLayout(l.ID)
		if geometry.ValidBoundary(l.Boundary) {
			view.FitToBounds(l.Boundary)
		}
	}

	p.subdivide = widget.NewButtonWithIcon("Subdivide", theme.GridIcon(), p.toggleSubdivision)
	p.delete = widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), p.confirmDelete)

	p.container = container.NewBorder(
		widget.NewLabelWithStyle("Layouts", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		container.NewVBox(p.subdivide, p.delete),
		nil, nil,
		p.list,
	)

	for _, ev := range []app.EventType{
		app.EventLayoutCreated, app.EventLayoutUpdated, app.EventLayoutDeleted,
		app.EventPlotAdded, app.EventPlotRemoved, app.EventRoleChanged,
	} {
		state.On(ev, func(interface{}) { p.reload() })
	}
	state.On(app.EventSelectionChanged, func(interface{}) { p.syncSelection() })
	state.On(app.EventSubdivisionChanged, func(interface{}) { p.syncButtons() })

	p.reload()
	p.ExtendBaseWidget(p)
	return p
}

// reload refreshes the row snapshot and re-renders.
func (p *LayoutsPanel) reload() {
	p.rows = p.state.Layouts.All()
	p.list.Refresh()
	p.syncButtons()
}

// syncSelection mirrors the state selection into the list widget.
func (p *LayoutsPanel) syncSelection() {
	id := p.state.Layouts.SelectedID()
	if id == 0 {
		p.list.UnselectAll()
		p.syncButtons()
		return
	}
	for i, l := range p.rows {
		if l.ID == id {
			p.list.Select(i)
			break
		}
	}
	p.syncButtons()
}

// syncButtons enables the action buttons according to the role, selection,
// and subdivision session.
func (p *LayoutsPanel) syncButtons() {
	if !p.state.CanEdit() || p.state.Layouts.SelectedID() == 0 {
		p.subdivide.Disable()
		p.delete.Disable()
		return
	}
	p.subdivide.Enable()
	p.delete.Enable()

	if p.state.Subdividing() != 0 {
		p.subdivide.SetText("Exit Subdivision")
	} else {
		p.subdivide.SetText("Subdivide")
	}
}

// toggleSubdivision enters or exits the plot drawing session for the
// selected layout. Entry brings the layout into view, so plot drawing never
// starts off-screen after the user panned away.
func (p *LayoutsPanel) toggleSubdivision() {
	if p.state.Subdividing() != 0 {
		p.state.ExitSubdivision()
		return
	}
	id := p.state.Layouts.SelectedID()
	if id == 0 || !p.state.EnterSubdivision(id) {
		return
	}
	if l, ok := p.state.Layouts.Get(id); ok && geometry.ValidBoundary(l.Boundary) {
		p.view.FitToBounds(l.Boundary)
	}
}

// confirmDelete asks before removing the selected layout and its plots.
func (p *LayoutsPanel) confirmDelete() {
	l, ok := p.state.Layouts.Selected()
	if !ok {
		return
	}
	dialog.NewConfirm(
		"Delete Layout",
		fmt.Sprintf("Delete %q and its %d plots? This cannot be undone.", l.Name, len(l.Plots)),
		func(confirmed bool) {
			if confirmed {
				p.state.DeleteLayout(l.ID)
			}
		},
		p.window,
	).Show()
}

// CreateRenderer implements fyne.Widget.
func (p *LayoutsPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.container)
}
