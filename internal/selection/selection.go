// Package selection decides which showroom object is highlighted and shown in
// the object info panel. Cars are never selected here; clicking them navigates.
package selection

import (
	"car-showroom/internal/scenegraph"
	"car-showroom/internal/state"

	"github.com/charmbracelet/log"
)

// Unlocker releases pointer capture.
type Unlocker interface {
	IsLocked() bool
	Unlock()
}

// Controller applies pointer events to the state store.
type Controller struct {
	store    *state.Store
	unlocker Unlocker
	logger   *log.Logger
}

func NewController(store *state.Store, unlocker Unlocker, logger *log.Logger) *Controller {
	return &Controller{store: store, unlocker: unlocker, logger: logger}
}

func underCar(n *scenegraph.Node) bool {
	_, ok := n.CarID()
	return ok
}

// PointerOver selects n for the outline unless it belongs to a car.
func (c *Controller) PointerOver(n *scenegraph.Node) {
	if n == nil || underCar(n) {
		return
	}
	c.store.SetSelected(n)
}

// PointerOut clears the selection only when n is the current selection.
func (c *Controller) PointerOut(n *scenegraph.Node) {
	if n == nil || underCar(n) {
		return
	}
	if c.store.Selected() == n {
		c.store.SetSelected(nil)
	}
}

// Click selects n, opens the info panel and releases pointer capture. It
// returns false without touching any state when n belongs to a car, leaving
// the click to navigation.
func (c *Controller) Click(n *scenegraph.Node) bool {
	if n == nil || underCar(n) {
		return false
	}
	c.store.SetSelected(n)
	c.store.SetShowObjectInfoPanel(true)
	if c.unlocker != nil && c.unlocker.IsLocked() {
		c.unlocker.Unlock()
	}
	name := n.Name
	if name == "" {
		name = n.ID.String()
	}
	c.logger.Info("selected object", "name", name)
	return true
}

// ClosePanel hides the info panel. The selection stays.
func (c *Controller) ClosePanel() {
	c.store.SetShowObjectInfoPanel(false)
}

// OutlineTargets returns the nodes to draw with an outline.
func (c *Controller) OutlineTargets() []*scenegraph.Node {
	if sel := c.store.Selected(); sel != nil {
		return []*scenegraph.Node{sel}
	}
	return nil
}

// Hover turns per-frame pick results into over and out transitions.
type Hover struct {
	current *scenegraph.Node
}

// Update feeds the node under the pointer this frame (nil for none) and calls
// the controller on every change.
func (h *Hover) Update(c *Controller, picked *scenegraph.Node) {
	if picked == h.current {
		return
	}
	if h.current != nil {
		c.PointerOut(h.current)
	}
	h.current = picked
	if picked != nil {
		c.PointerOver(picked)
	}
}

// Current returns the node under the pointer.
func (h *Hover) Current() *scenegraph.Node { return h.current }

// PointerCursor reports whether the pointer hand cursor should show.
func (h *Hover) PointerCursor() bool { return h.current != nil }

// Reset forgets the hovered node without firing events.
func (h *Hover) Reset() { h.current = nil }
