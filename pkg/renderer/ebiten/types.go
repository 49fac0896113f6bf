// Package ebiten provides an Ebiten-based host for the map view.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"regionmap/pkg/config"
	"regionmap/pkg/mapview"
)

// keyRepeatInfo tracks the repeat state for a held key
type keyRepeatInfo struct {
	firstPressed int64 // Timestamp when first pressed (milliseconds)
	lastRepeat   int64 // Timestamp when last repeat event was sent (milliseconds)
}

// keyCode pairs an Ebiten key with the raw input code the bindings use
type keyCode struct {
	key  ebiten.Key
	code string
}

// EbitenRenderer runs a map session in an Ebiten window
type EbitenRenderer struct {
	cfg *config.Config
	log *zap.Logger

	// Window dimensions, updated by Layout
	windowWidth  int
	windowHeight int

	session *mapview.Session
	backend *imageBackend

	// Font source for overlay text
	sansFontSource *text.GoTextFaceSource

	// Cached font face (recreated when the size changes)
	cachedUIFontSize float64
	cachedSansFace   *text.GoTextFace

	// 1x1 white source for solid triangles
	whitePixel *ebiten.Image

	// Pointer state between frames
	lastCursorX int
	lastCursorY int

	// Key repeat state tracking, keyed by raw code
	keyRepeatState map[string]keyRepeatInfo

	// Flag to track if we've logged window opening
	windowOpenedLogged bool

	closed bool
}
