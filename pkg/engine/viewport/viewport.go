package viewport

// Zoom constraints, in screen pixels per world block
const (
	MinZoom = 0.4
	MaxZoom = 3.5
)

// Viewport is the mutable view state of one map session: the world point shown
// at the middle of the screen and the zoom scale.
type Viewport struct {
	Center WorldPoint
	Zoom   float64
}

// New creates a viewport centered on center with the zoom clamped into range
func New(center WorldPoint, zoom float64) *Viewport {
	return &Viewport{Center: center, Zoom: ClampZoom(zoom)}
}

// ClampZoom limits z to [MinZoom, MaxZoom]
func ClampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

// WorldToScreen maps a world point onto a screen of the given size
func (v *Viewport) WorldToScreen(p WorldPoint, width, height int) ScreenPoint {
	return ScreenPoint{
		X: float64(width)/2 + (p.X-v.Center.X)*v.Zoom,
		Y: float64(height)/2 + (p.Z-v.Center.Z)*v.Zoom,
	}
}

// ScreenToWorld is the inverse of WorldToScreen
func (v *Viewport) ScreenToWorld(s ScreenPoint, width, height int) WorldPoint {
	return WorldPoint{
		X: v.Center.X + (s.X-float64(width)/2)/v.Zoom,
		Z: v.Center.Z + (s.Y-float64(height)/2)/v.Zoom,
	}
}

// ScreenDeltaToWorldDelta converts a pixel displacement into world units
func (v *Viewport) ScreenDeltaToWorldDelta(dx, dz float64) WorldDelta {
	return WorldDelta{DX: dx / v.Zoom, DZ: dz / v.Zoom}
}

// Pan drags the map content by a screen displacement: moving the pointer right
// moves the center left in world space.
func (v *Viewport) Pan(dx, dy float64) {
	d := v.ScreenDeltaToWorldDelta(dx, dy)
	v.Center.X -= d.DX
	v.Center.Z -= d.DZ
}

// ZoomBy multiplies the zoom by factor and clamps the result
func (v *Viewport) ZoomBy(factor float64) {
	v.Zoom = ClampZoom(v.Zoom * factor)
}

// TilePixelSize returns how many screen pixels one tile spans at the current zoom
func (v *Viewport) TilePixelSize(tileSize int) float64 {
	return float64(tileSize) * v.Zoom
}

// VisibleTiles returns the tiles needed to cover a screen of the given size.
// See VisibleTiles.
func (v *Viewport) VisibleTiles(width, height, tileSize int) []TileCoord {
	return VisibleTiles(width, height, tileSize, v.Zoom, v.Center)
}
