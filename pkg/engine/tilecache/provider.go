package tilecache

import (
	"context"

	"regionmap/pkg/engine/pixel"
	"regionmap/pkg/engine/viewport"
)

// Region is the stored map data of one tile as seen by a Rasterizer
type Region interface {
	Coord() viewport.TileCoord
	// Size is the edge length of the region in blocks
	Size() int
	// ColorAt returns the canonical 0xAARRGGBB color of the block column at
	// (x, z), relative to the region origin
	ColorAt(x, z int) uint32
}

// Rasterizer turns stored region data into a canonical-order pixel buffer
type Rasterizer func(Region) *pixel.Buffer

// Provider supplies rendered tiles. FetchRenderedTile may block and is only
// ever called from cache-owned goroutines; it must honour ctx. A nil buffer
// with a nil error means the tile has not been produced yet.
type Provider interface {
	FetchRenderedTile(ctx context.Context, coord viewport.TileCoord, rasterize Rasterizer) (*pixel.Buffer, error)
}

// Image is a display-backend image resource
type Image interface {
	Size() (width, height int)
	// WritePixels replaces the image content with backend-order pixel bytes
	// (R, G, B, A per pixel)
	WritePixels(pix []byte)
	// Release frees the backend resource. It is called exactly once.
	Release()
}

// Backend creates display images
type Backend interface {
	NewImage(width, height int) Image
}

// RasterizeRegion is the default Rasterizer: one pixel per block column
func RasterizeRegion(r Region) *pixel.Buffer {
	size := r.Size()
	buf := pixel.NewBuffer(size, size)
	for z := 0; z < size; z++ {
		row := buf.Pix[z*size : (z+1)*size]
		for x := range row {
			row[x] = r.ColorAt(x, z)
		}
	}
	return buf
}
