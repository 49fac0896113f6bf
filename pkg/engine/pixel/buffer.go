package pixel

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
)

// Buffer is a width x height grid of canonical-order pixels, row-major.
// Alpha is straight (not premultiplied).
type Buffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewBuffer allocates a transparent buffer
func NewBuffer(width, height int) *Buffer {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("pixel: negative buffer size %dx%d", width, height))
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
}

// At returns the canonical pixel at (x, y), or 0 outside the buffer
func (b *Buffer) At(x, y int) uint32 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

// Set stores a canonical pixel at (x, y); out-of-range writes are ignored
func (b *Buffer) Set(x, y int, p uint32) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = p
}

// EncodeBackend converts every pixel to backend order and lays it out as
// little-endian bytes (R, G, B, A per pixel). dst is reused when it is large
// enough.
func (b *Buffer) EncodeBackend(dst []byte) []byte {
	n := len(b.Pix) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, p := range b.Pix {
		binary.LittleEndian.PutUint32(dst[i*4:], ToBackendOrder(p))
	}
	return dst
}

// DecodeBackend is the inverse of EncodeBackend: it reads R, G, B, A bytes
// into a canonical buffer of the given size.
func DecodeBackend(width, height int, src []byte) (*Buffer, error) {
	if len(src) != width*height*4 {
		return nil, fmt.Errorf("pixel: backend data is %d bytes, want %d for %dx%d", len(src), width*height*4, width, height)
	}
	b := NewBuffer(width, height)
	for i := range b.Pix {
		b.Pix[i] = ToCanonicalOrder(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return b, nil
}

// FromImage copies any image into a canonical buffer
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := NewBuffer(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			b.Pix[(y-bounds.Min.Y)*b.Width+(x-bounds.Min.X)] = ARGB(c.A, c.R, c.G, c.B)
		}
	}
	return b
}

// ToNRGBA copies the buffer into a standard library image
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, p := range b.Pix {
		a, r, g, bl := Channels(p)
		img.Pix[i*4] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = bl
		img.Pix[i*4+3] = a
	}
	return img
}

// Average returns the alpha-weighted mean color of the buffer in canonical
// order. Fully transparent buffers average to 0.
func (b *Buffer) Average() uint32 {
	var sumR, sumG, sumB, sumA uint64
	for _, p := range b.Pix {
		a, r, g, bl := Channels(p)
		sumR += uint64(r) * uint64(a)
		sumG += uint64(g) * uint64(a)
		sumB += uint64(bl) * uint64(a)
		sumA += uint64(a)
	}
	if sumA == 0 {
		return 0
	}
	return ARGB(
		uint8(sumA/uint64(len(b.Pix))),
		uint8(sumR/sumA),
		uint8(sumG/sumA),
		uint8(sumB/sumA),
	)
}
