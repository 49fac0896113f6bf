package ebiten

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func loadSansFontSource() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return src, nil
}

// getUIFontSize returns the font size for overlay text at the current window
// height
func (e *EbitenRenderer) getUIFontSize() float64 {
	return fontSizeForHeight(e.windowHeight)
}

// fontSizeForHeight scales uiFontSize with the window height in half-point
// steps, never below uiFontSize or above maxUIFontSize
func fontSizeForHeight(height int) float64 {
	size := uiFontSize * float64(height) / fontReferenceHeight
	size = math.Round(size*2) / 2
	return min(max(size, uiFontSize), maxUIFontSize)
}

// getSansFontFace returns a cached sans-serif font face for overlay text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	size := e.getUIFontSize()
	if e.cachedSansFace == nil || e.cachedUIFontSize != size {
		e.cachedUIFontSize = size
		e.cachedSansFace = &text.GoTextFace{
			Source: e.sansFontSource,
			Size:   size,
		}
	}
	return e.cachedSansFace
}
