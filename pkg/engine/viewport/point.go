// Package viewport maps between world space and screen space for the overview
// map and works out which region tiles a view needs.
package viewport

import (
	"fmt"
	"math"
)

// WorldPoint is a continuous position in world-block units
type WorldPoint struct {
	X float64
	Z float64
}

// ScreenPoint is a position in screen pixels, origin at the top-left
type ScreenPoint struct {
	X float64
	Y float64
}

// WorldDelta is a displacement in world-block units
type WorldDelta struct {
	DX float64
	DZ float64
}

// TileCoord identifies one region tile on the fixed tile-size grid
type TileCoord struct {
	X int
	Z int
}

// String returns "x:z"
func (c TileCoord) String() string {
	return fmt.Sprintf("%d:%d", c.X, c.Z)
}

// Offset returns the coordinate shifted by (dx, dz) tiles
func (c TileCoord) Offset(dx, dz int) TileCoord {
	return TileCoord{X: c.X + dx, Z: c.Z + dz}
}

// Origin returns the world position of the tile's top-left (minimum) corner
func (c TileCoord) Origin(tileSize int) WorldPoint {
	return WorldPoint{X: float64(c.X * tileSize), Z: float64(c.Z * tileSize)}
}

// TileOf returns the tile containing the block at floor(p)
func TileOf(p WorldPoint, tileSize int) TileCoord {
	return TileCoord{
		X: floorDiv(int(math.Floor(p.X)), tileSize),
		Z: floorDiv(int(math.Floor(p.Z)), tileSize),
	}
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
