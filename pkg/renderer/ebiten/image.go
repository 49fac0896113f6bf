package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"

	"regionmap/pkg/engine/pixel"
	"regionmap/pkg/engine/tilecache"
)

// imageBackend creates tile images on the GPU. It is only used from the
// Ebiten game goroutine.
type imageBackend struct {
	scratch []byte
}

func (b *imageBackend) NewImage(width, height int) tilecache.Image {
	return &tileImage{img: ebiten.NewImage(width, height), backend: b}
}

type tileImage struct {
	img     *ebiten.Image
	backend *imageBackend
}

func (t *tileImage) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// WritePixels uploads straight-alpha RGBA bytes; Ebiten wants them premultiplied
func (t *tileImage) WritePixels(pix []byte) {
	t.backend.scratch = pixel.PremultiplyRGBA(t.backend.scratch, pix)
	t.img.WritePixels(t.backend.scratch)
}

func (t *tileImage) Release() {
	t.img.Deallocate()
}
