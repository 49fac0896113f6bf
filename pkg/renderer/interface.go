// Package renderer holds the active display host for the map view.
package renderer

import (
	"errors"

	"regionmap/pkg/engine/tilecache"
	"regionmap/pkg/mapview"
)

// ErrNoRenderer is returned by Run when no renderer has been set
var ErrNoRenderer = errors.New("no renderer set")

// Renderer defines the interface for map display backends
type Renderer interface {
	// Backend creates the display images tile uploads go to. It must be
	// available before Run so the session can be built around it.
	Backend() tilecache.Backend

	// Run drives the session until the view is closed. It owns the render
	// thread for its whole duration.
	Run(s *mapview.Session) error
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Backend returns the current renderer's image backend, or nil
func Backend() tilecache.Backend {
	if Current != nil {
		return Current.Backend()
	}
	return nil
}

// Run runs the session on the current renderer
func Run(s *mapview.Session) error {
	if Current == nil {
		return ErrNoRenderer
	}
	return Current.Run(s)
}
