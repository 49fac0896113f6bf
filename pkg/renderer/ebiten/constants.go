package ebiten

import "image/color"

var (
	colorTextShadow = color.RGBA{0, 0, 0, 255}
	colorClear      = color.RGBA{15, 15, 26, 255} // Behind the dimmed map
)

const (
	uiFontSize          = 14.0 // at fontReferenceHeight
	maxUIFontSize       = 18.0 // overlay lines are 20 px apart
	fontReferenceHeight = 720
	shadowOffset        = 1.0

	keyRepeatInitialDelay = 300 // Initial delay before first repeat (milliseconds)
	keyRepeatInterval     = 50  // Interval between repeat events (milliseconds)
)
