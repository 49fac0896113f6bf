package tilestore

import (
	"math"

	"regionmap/pkg/engine/pixel"
	"regionmap/pkg/engine/viewport"
)

// Height bands, as fractions of the normalized terrain height
var bands = []struct {
	top   float64
	color uint32
}{
	{0.30, 0xFF1B3A6B}, // deep water
	{0.40, 0xFF2E5FA3}, // water
	{0.43, 0xFFD8C98E}, // sand
	{0.60, 0xFF5E9E3A}, // grass
	{0.72, 0xFF3B6E2A}, // forest
	{0.85, 0xFF7D7468}, // rock
	{1.01, 0xFFF2F4F7}, // snow
}

const (
	waterLevel  = 0.40
	octaves     = 4
	baseFreq    = 1.0 / 256
	shadeFactor = 40.0
)

// region is procedurally generated map data for one tile
type region struct {
	coord   viewport.TileCoord
	size    int
	heights []float64 // (size+1) x (size+1), one extra row and column for slopes
}

func newRegion(coord viewport.TileCoord, size int, seed int64) *region {
	r := &region{coord: coord, size: size, heights: make([]float64, (size+1)*(size+1))}
	ox, oz := coord.X*size, coord.Z*size
	for z := 0; z <= size; z++ {
		for x := 0; x <= size; x++ {
			r.heights[z*(size+1)+x] = terrainHeight(float64(ox+x), float64(oz+z), seed)
		}
	}
	return r
}

func (r *region) Coord() viewport.TileCoord { return r.coord }
func (r *region) Size() int                 { return r.size }

// ColorAt colors a block column by height band, shaded by the slope toward
// the north-west light
func (r *region) ColorAt(x, z int) uint32 {
	w := r.size + 1
	h := r.heights[z*w+x]
	base := bandColor(h)
	if h < waterLevel {
		return base
	}
	slope := (r.heights[(z+1)*w+x+1] - h) * shadeFactor
	return shade(base, 1-slope)
}

func bandColor(h float64) uint32 {
	for _, b := range bands {
		if h < b.top {
			return b.color
		}
	}
	return bands[len(bands)-1].color
}

func shade(p uint32, f float64) uint32 {
	f = math.Max(0.5, math.Min(1.5, f))
	a, r, g, b := pixel.Channels(p)
	return pixel.ARGB(a, scale(r, f), scale(g, f), scale(b, f))
}

func scale(c uint8, f float64) uint8 {
	return uint8(math.Min(255, float64(c)*f))
}

// terrainHeight is fractal value noise in [0, 1)
func terrainHeight(x, z float64, seed int64) float64 {
	var sum, norm float64
	amp, freq := 1.0, baseFreq
	for i := 0; i < octaves; i++ {
		sum += amp * valueNoise(x*freq, z*freq, seed+int64(i))
		norm += amp
		amp /= 2
		freq *= 2
	}
	return sum / norm
}

func valueNoise(x, z float64, seed int64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	tx, tz := smooth(x-x0), smooth(z-z0)
	ix, iz := int64(x0), int64(z0)

	v00 := lattice(ix, iz, seed)
	v10 := lattice(ix+1, iz, seed)
	v01 := lattice(ix, iz+1, seed)
	v11 := lattice(ix+1, iz+1, seed)

	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return top + (bottom-top)*tz
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

// lattice hashes a grid point to [0, 1)
func lattice(x, z, seed int64) float64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(z)*0xC2B2AE3D27D4EB4F ^ uint64(seed)*0x165667B19E3779F9
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return float64(h>>11) / (1 << 53)
}
