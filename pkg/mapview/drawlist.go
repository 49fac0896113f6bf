package mapview

import (
	"regionmap/pkg/engine/tilecache"
	"regionmap/pkg/engine/viewport"
)

// Command is one host draw primitive. Colors are canonical 0xAARRGGBB.
type Command interface {
	command()
}

// FillRect fills the rectangle [X0, X1) x [Y0, Y1)
type FillRect struct {
	X0, Y0, X1, Y1 float64
	Color          uint32
}

// Text draws a string with its top-left at (X, Y), or centered on (X, Y)
type Text struct {
	X, Y     float64
	Text     string
	Color    uint32
	Shadow   bool
	Centered bool
}

// TexturedQuad draws a tile image stretched over a W x H rectangle at (X, Y)
type TexturedQuad struct {
	Tile       viewport.TileCoord
	Image      tilecache.Image
	X, Y, W, H float64
}

// Triangle fills a triangle given in screen coordinates
type Triangle struct {
	Points [3]viewport.ScreenPoint
	Color  uint32
}

func (FillRect) command()     {}
func (Text) command()         {}
func (TexturedQuad) command() {}
func (Triangle) command()     {}

// Frame is everything the host has to draw for one frame, in order
type Frame struct {
	Width, Height int
	Commands      []Command

	// MapDrawn is false when the map could not be drawn and the unavailable
	// message was emitted instead
	MapDrawn bool
	// VisibleTiles counts the tiles the view needed; MissingTiles those with
	// no image yet
	VisibleTiles int
	MissingTiles int
}

func (f *Frame) add(c Command) {
	f.Commands = append(f.Commands, c)
}

// Quads returns the textured quads of the frame
func (f *Frame) Quads() []TexturedQuad {
	var quads []TexturedQuad
	for _, c := range f.Commands {
		if q, ok := c.(TexturedQuad); ok {
			quads = append(quads, q)
		}
	}
	return quads
}
