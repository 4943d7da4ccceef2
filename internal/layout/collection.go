package layout

import (
	"sync"

	"site-planner/pkg/geometry"
)

// Collection is the in-memory layout list with single-selection tracking.
// Layout ids are positive integers; zero means no selection. Access is
// mutex-guarded: debounced form saves settle on a timer goroutine, so reads
// and writes are not confined to the UI event loop.
type Collection struct {
	mu         sync.RWMutex
	layouts    []Layout
	selectedID int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Replace swaps in a loaded layout list, clearing the selection.
func (c *Collection) Replace(layouts []Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layouts = layouts
	c.selectedID = 0
}

// All returns a copy of the layout list.
func (c *Collection) All() []Layout {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Layout, len(c.layouts))
	copy(out, c.layouts)
	return out
}

// Len returns the number of layouts.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.layouts)
}

// NextID returns max(existing ids) + 1, or 1 when the collection is empty.
func (c *Collection) NextID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nextIDLocked()
}

func (c *Collection) nextIDLocked() int {
	next := 1
	for _, l := range c.layouts {
		if l.ID >= next {
			next = l.ID + 1
		}
	}
	return next
}

// Add creates a layout from a finalized boundary with default status
// Available and a monotonically assigned id.
func (c *Collection) Add(name string, boundary []geometry.GeoPoint) (Layout, error) {
	if !geometry.ValidBoundary(boundary) {
		return Layout{}, ErrShortBoundary
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	l := Layout{
		ID:       c.nextIDLocked(),
		Name:     name,
		Status:   StatusAvailable,
		Boundary: boundary,
	}
	c.layouts = append(c.layouts, l)
	return l, nil
}

// Get returns the layout with the given id.
func (c *Collection) Get(id int) (Layout, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.getLocked(id)
}

func (c *Collection) getLocked(id int) (Layout, bool) {
	for _, l := range c.layouts {
		if l.ID == id {
			return l, true
		}
	}
	return Layout{}, false
}

// Update replaces the layout matching the record's id.
func (c *Collection) Update(l Layout) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.layouts {
		if c.layouts[i].ID == l.ID {
			c.layouts[i] = l
			return true
		}
	}
	return false
}

// Delete removes the layout with the given id, discarding its plots. If the
// deleted layout was selected, the selection is cleared.
func (c *Collection) Delete(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.layouts {
		if c.layouts[i].ID == id {
			c.layouts = append(c.layouts[:i], c.layouts[i+1:]...)
			if c.selectedID == id {
				c.selectedID = 0
			}
			return true
		}
	}
	return false
}

// Select marks the layout with the given id as selected. Passing an unknown
// id clears the selection.
func (c *Collection) Select(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.getLocked(id); ok {
		c.selectedID = id
	} else {
		c.selectedID = 0
	}
}

// ClearSelection clears the selection.
func (c *Collection) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = 0
}

// Selected returns the selected layout, if any.
func (c *Collection) Selected() (Layout, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selectedID == 0 {
		return Layout{}, false
	}
	return c.getLocked(c.selectedID)
}

// SelectedID returns the selected layout id, or zero.
func (c *Collection) SelectedID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selectedID
}

// AddPlot appends a plot to the given layout.
func (c *Collection) AddPlot(layoutID int, p Plot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.layouts {
		if c.layouts[i].ID == layoutID {
			c.layouts[i].Plots = append(c.layouts[i].Plots, p)
			return true
		}
	}
	return false
}

// UpdatePlot replaces the plot matching its id inside the given layout.
func (c *Collection) UpdatePlot(layoutID int, p Plot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.layouts {
		if c.layouts[i].ID != layoutID {
			continue
		}
		for j := range c.layouts[i].Plots {
			if c.layouts[i].Plots[j].ID == p.ID {
				c.layouts[i].Plots[j] = p
				return true
			}
		}
	}
	return false
}

// RemovePlot deletes a plot by id from the given layout.
func (c *Collection) RemovePlot(layoutID int, plotID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.layouts {
		if c.layouts[i].ID != layoutID {
			continue
		}
		plots := c.layouts[i].Plots
		for j := range plots {
			if plots[j].ID == plotID {
				c.layouts[i].Plots = append(plots[:j], plots[j+1:]...)
				return true
			}
		}
	}
	return false
}

// PlotAt returns the plot of the given layout whose boundary contains the
// geographic point. Later plots win on overlap, matching draw order.
func (c *Collection) PlotAt(layoutID int, p geometry.GeoPoint) (Plot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.getLocked(layoutID)
	if !ok {
		return Plot{}, false
	}
	for i := len(l.Plots) - 1; i >= 0; i-- {
		if geometry.GeoPointInPolygon(p, l.Plots[i].Boundary) {
			return l.Plots[i], true
		}
	}
	return Plot{}, false
}

// LayoutAt returns the layout whose boundary contains the geographic point.
func (c *Collection) LayoutAt(p geometry.GeoPoint) (Layout, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := len(c.layouts) - 1; i >= 0; i-- {
		if geometry.GeoPointInPolygon(p, c.layouts[i].Boundary) {
			return c.layouts[i], true
		}
	}
	return Layout{}, false
}
