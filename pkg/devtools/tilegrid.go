// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"sync"

	"github.com/gookit/color"
	"golang.org/x/sync/errgroup"

	"regionmap/pkg/engine/pixel"
	"regionmap/pkg/engine/tilecache"
	"regionmap/pkg/engine/viewport"
)

const fetchConcurrency = 8

// GridCell is one tile of a dumped grid
type GridCell struct {
	Coord   viewport.TileCoord
	Present bool
	Average uint32 // canonical 0xAARRGGBB, zero when not present
}

// Grid is the visible tile set of one view with the data state of each tile,
// laid out row by row from the north-west corner
type Grid struct {
	Cols, Rows int
	Origin     viewport.TileCoord // north-west tile
	Center     viewport.TileCoord
	Cells      []GridCell
	Buffers    map[viewport.TileCoord]*pixel.Buffer
}

// ViewOptions describes the view a grid is built for
type ViewOptions struct {
	Width, Height int
	TileSize      int
	Zoom          float64
	Center        viewport.WorldPoint
}

// BuildGrid fetches every visible tile of the view from p. Fetch errors count
// as missing data; only context cancellation fails the build.
func BuildGrid(ctx context.Context, p tilecache.Provider, opts ViewOptions) (*Grid, error) {
	coords := viewport.VisibleTiles(opts.Width, opts.Height, opts.TileSize, viewport.ClampZoom(opts.Zoom), opts.Center)
	if len(coords) == 0 {
		return nil, fmt.Errorf("view %dx%d at zoom %.2f shows no tiles", opts.Width, opts.Height, opts.Zoom)
	}

	minC, maxC := coords[0], coords[0]
	for _, c := range coords {
		minC.X, minC.Z = min(minC.X, c.X), min(minC.Z, c.Z)
		maxC.X, maxC.Z = max(maxC.X, c.X), max(maxC.Z, c.Z)
	}
	g := &Grid{
		Cols:    maxC.X - minC.X + 1,
		Rows:    maxC.Z - minC.Z + 1,
		Origin:  minC,
		Center:  viewport.TileOf(opts.Center, opts.TileSize),
		Cells:   make([]GridCell, (maxC.X-minC.X+1)*(maxC.Z-minC.Z+1)),
		Buffers: make(map[viewport.TileCoord]*pixel.Buffer),
	}

	var mu sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(fetchConcurrency)
	for _, c := range coords {
		eg.Go(func() error {
			buf, err := p.FetchRenderedTile(ctx, c, nil)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			cell := GridCell{Coord: c}
			if err == nil && buf != nil {
				cell.Present = true
				cell.Average = buf.Average()
			}
			mu.Lock()
			g.Cells[g.index(c)] = cell
			if cell.Present {
				g.Buffers[c] = buf
			}
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Grid) index(c viewport.TileCoord) int {
	return (c.Z-g.Origin.Z)*g.Cols + (c.X - g.Origin.X)
}

// Missing counts tiles without data
func (g *Grid) Missing() int {
	n := 0
	for _, c := range g.Cells {
		if !c.Present {
			n++
		}
	}
	return n
}

// Write prints the grid, two columns per tile. With useColor each present
// tile is a block in its average color; otherwise present tiles are '#'.
// Missing tiles are '·' and the center tile is '@'.
func (g *Grid) Write(w io.Writer, useColor bool) error {
	if _, err := fmt.Fprintf(w, "tiles %d..%d x %d..%d  missing %d/%d\n",
		g.Origin.X, g.Origin.X+g.Cols-1, g.Origin.Z, g.Origin.Z+g.Rows-1, g.Missing(), len(g.Cells)); err != nil {
		return err
	}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row*g.Cols+col]
			if _, err := io.WriteString(w, cellString(cell, cell.Coord == g.Center, useColor)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func cellString(c GridCell, center, useColor bool) string {
	switch {
	case !c.Present && center:
		return "@ "
	case !c.Present:
		return "· "
	case !useColor && center:
		return "@@"
	case !useColor:
		return "##"
	}
	_, r, gr, b := pixel.Channels(c.Average)
	bg := color.RGB(r, gr, b, true)
	if center {
		return color.NewRGBStyle(color.RGB(255, 255, 255), bg).Sprint("@ ")
	}
	return bg.Sprint("  ")
}

// WriteTilePNG encodes a canonical buffer as PNG
func WriteTilePNG(w io.Writer, buf *pixel.Buffer) error {
	return png.Encode(w, buf.ToNRGBA())
}
