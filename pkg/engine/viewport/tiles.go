package viewport

import "math"

// VisibleTiles returns every tile that may intersect a width x height screen
// centered on center at the given zoom, plus a one-tile margin.
//
// The radius along each axis is max(1, ceil(dim/tilePixels)/2 + 1) tiles, and
// the result is the full square of offsets around the tile containing the
// center, row by row. An empty result means a tile would be one screen pixel
// or smaller and the map should not be drawn at all.
func VisibleTiles(width, height, tileSize int, zoom float64, center WorldPoint) []TileCoord {
	tilePixels := float64(tileSize) * zoom
	if tilePixels <= 1 {
		return nil
	}

	radiusX := tileRadius(width, tilePixels)
	radiusZ := tileRadius(height, tilePixels)
	centerTile := TileOf(center, tileSize)

	tiles := make([]TileCoord, 0, (2*radiusX+1)*(2*radiusZ+1))
	for dx := -radiusX; dx <= radiusX; dx++ {
		for dz := -radiusZ; dz <= radiusZ; dz++ {
			tiles = append(tiles, centerTile.Offset(dx, dz))
		}
	}
	return tiles
}

func tileRadius(screenDim int, tilePixels float64) int {
	r := int(math.Ceil(float64(screenDim)/tilePixels))/2 + 1
	if r < 1 {
		return 1
	}
	return r
}
