package panels

import (
	"fmt"
	"time"

	"site-planner/internal/app"
	"site-planner/internal/layout"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/bep/debounce"
)

// Form edits settle to the data layer after this quiet period.
const saveDelay = 400 * time.Millisecond

var statusOptions = []string{
	string(layout.StatusAvailable),
	string(layout.StatusPending),
	string(layout.StatusSold),
}

// DetailsPanel edits the selected layout's metadata and its plots. Edits are
// debounced, so rapid typing settles into one save.
type DetailsPanel struct {
	widget.BaseWidget

	state *app.State

	name    *widget.Entry
	vendor  *widget.Entry
	status  *widget.Select
	plots   *fyne.Container
	content *fyne.Container

	saveLayout func(f func())
	savePlot   func(f func())

	// loading suppresses change callbacks while the form is being filled
	// from state.
	loading bool
}

// NewDetailsPanel creates the details editor bound to the selection.
func NewDetailsPanel(state *app.State) *DetailsPanel {
	p := &DetailsPanel{
		state:      state,
		saveLayout: debounce.New(saveDelay),
		savePlot:   debounce.New(saveDelay),
	}

	p.name = widget.NewEntry()
	p.name.SetPlaceHolder("Layout name")
	p.name.OnChanged = func(string) { p.scheduleLayoutSave() }

	p.vendor = widget.NewEntry()
	p.vendor.SetPlaceHolder("Vendor")
	p.vendor.OnChanged = func(string) { p.scheduleLayoutSave() }

	p.status = widget.NewSelect(statusOptions, func(string) { p.scheduleLayoutSave() })

	p.plots = container.NewVBox()

	p.content = container.NewVBox(
		widget.NewLabelWithStyle("Details", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Name", p.name),
			widget.NewFormItem("Vendor", p.vendor),
			widget.NewFormItem("Status", p.status),
		),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Plots", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		p.plots,
	)

	for _, ev := range []app.EventType{
		app.EventSelectionChanged, app.EventLayoutUpdated, app.EventLayoutDeleted,
		app.EventPlotAdded, app.EventPlotUpdated, app.EventPlotRemoved,
		app.EventRoleChanged,
	} {
		state.On(ev, func(interface{}) { p.reload() })
	}

	p.reload()
	p.ExtendBaseWidget(p)
	return p
}

// reload fills the form from the selected layout, or clears it.
func (p *DetailsPanel) reload() {
	p.loading = true
	defer func() { p.loading = false }()

	l, ok := p.state.Layouts.Selected()
	if !ok {
		p.name.SetText("")
		p.vendor.SetText("")
		p.status.ClearSelected()
		p.plots.RemoveAll()
		p.setEnabled(false)
		p.plots.Refresh()
		return
	}

	p.name.SetText(l.Name)
	p.vendor.SetText(l.VendorName)
	p.status.SetSelected(string(l.Status))
	p.setEnabled(p.state.CanEdit())

	p.plots.RemoveAll()
	for _, plot := range l.Plots {
		p.plots.Add(p.plotRow(l.ID, plot))
	}
	p.plots.Refresh()
}

func (p *DetailsPanel) setEnabled(enabled bool) {
	if enabled {
		p.name.Enable()
		p.vendor.Enable()
		p.status.Enable()
	} else {
		p.name.Disable()
		p.vendor.Disable()
		p.status.Disable()
	}
}

// plotRow builds the editor row for one plot: number entry and status
// selector, both debounced into UpdatePlot.
func (p *DetailsPanel) plotRow(layoutID int, plot layout.Plot) fyne.CanvasObject {
	number := widget.NewEntry()
	number.SetText(plot.PlotNumber)

	status := widget.NewSelect(statusOptions, nil)
	status.SetSelected(string(plot.Status))

	apply := func() {
		if p.loading {
			return
		}
		p.savePlot(func() {
			updated := plot
			updated.PlotNumber = number.Text
			if status.Selected != "" {
				updated.Status = layout.Status(status.Selected)
			}
			p.state.UpdatePlot(layoutID, updated)
		})
	}
	number.OnChanged = func(string) { apply() }
	status.OnChanged = func(string) { apply() }

	if !p.state.CanEdit() {
		number.Disable()
		status.Disable()
	}

	return container.NewBorder(nil, nil,
		widget.NewLabel(fmt.Sprintf("Plot %s", plot.PlotNumber)),
		nil,
		container.NewGridWithColumns(2, number, status),
	)
}

// scheduleLayoutSave debounces the metadata form into one UpdateLayout.
func (p *DetailsPanel) scheduleLayoutSave() {
	if p.loading || !p.state.CanEdit() {
		return
	}
	l, ok := p.state.Layouts.Selected()
	if !ok {
		return
	}

	id := l.ID
	p.saveLayout(func() {
		current, ok := p.state.Layouts.Get(id)
		if !ok {
			return
		}
		current.Name = p.name.Text
		current.VendorName = p.vendor.Text
		if p.status.Selected != "" {
			current.Status = layout.Status(p.status.Selected)
		}
		p.state.UpdateLayout(current)
	})
}

// CreateRenderer implements fyne.Widget.
func (p *DetailsPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewVScroll(p.content))
}
