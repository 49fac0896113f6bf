package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Size returns the width and height of the terminal behind f in character
// cells. Falls back to defaults if the size cannot be determined.
func Size(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// MaxGridCells returns how many two-column cells and rows fit on the terminal
// behind f, leaving room for a header line
func MaxGridCells(f *os.File) (cols, rows int) {
	w, h := Size(f)
	return max(1, w/2), max(1, h-2)
}
