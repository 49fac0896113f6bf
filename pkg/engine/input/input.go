// Package input turns pointer and keyboard events into view changes for the
// overview map.
package input

import (
	"regionmap/pkg/engine/viewport"
)

// Button identifies a pointer button
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Zoom step factors applied per scroll notch
const (
	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9
)

// Controller interprets pointer input for one map view: primary-button drag
// pans the view, scrolling zooms it. Each method reports whether the event was
// consumed; unconsumed events belong to the host's default handling.
type Controller struct {
	view     *viewport.Viewport
	dragging bool
}

// NewController creates a controller that mutates view
func NewController(view *viewport.Viewport) *Controller {
	return &Controller{view: view}
}

// Dragging reports whether a primary-button drag is in progress
func (c *Controller) Dragging() bool {
	return c.dragging
}

// PointerDown starts a drag when the primary button is pressed inside the
// width x height screen.
func (c *Controller) PointerDown(x, y float64, button Button, width, height int) bool {
	if button != ButtonPrimary {
		return false
	}
	if x < 0 || y < 0 || x >= float64(width) || y >= float64(height) {
		return false
	}
	c.dragging = true
	return true
}

// PointerUp ends a drag. The release is never consumed so the host still sees it.
func (c *Controller) PointerUp(button Button) bool {
	if button == ButtonPrimary {
		c.dragging = false
	}
	return false
}

// PointerDrag pans the view by the pointer displacement while dragging
func (c *Controller) PointerDrag(button Button, dx, dy float64) bool {
	if !c.dragging || button != ButtonPrimary {
		return false
	}
	c.view.Pan(dx, dy)
	return true
}

// Scroll zooms in for a positive vertical amount and out for a negative one.
// A zero amount (horizontal-only scroll) is ignored.
func (c *Controller) Scroll(vertical float64) bool {
	switch {
	case vertical > 0:
		c.view.ZoomBy(ZoomInFactor)
	case vertical < 0:
		c.view.ZoomBy(ZoomOutFactor)
	default:
		return false
	}
	return true
}

// Apply performs a keyboard intent on the view. panStep is in screen pixels.
func (c *Controller) Apply(intent Intent, panStep, defaultZoom float64) bool {
	switch intent.Action {
	case ActionPanNorth:
		c.view.Pan(0, panStep)
	case ActionPanSouth:
		c.view.Pan(0, -panStep)
	case ActionPanWest:
		c.view.Pan(panStep, 0)
	case ActionPanEast:
		c.view.Pan(-panStep, 0)
	case ActionZoomIn:
		c.view.ZoomBy(ZoomInFactor)
	case ActionZoomOut:
		c.view.ZoomBy(ZoomOutFactor)
	case ActionZoomReset:
		c.view.Zoom = viewport.ClampZoom(defaultZoom)
	default:
		return false
	}
	return true
}
