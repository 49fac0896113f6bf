package mapview

import (
	"math"
	"sync"

	"regionmap/pkg/engine/viewport"
)

// TurnStep is the heading change per turn intent, in degrees
const TurnStep = 15.0

// Turner is an Observer whose heading can be changed from the map view
type Turner interface {
	Turn(degrees float64)
}

// Player is a standalone observer with a fixed position and a settable heading
type Player struct {
	mu  sync.RWMutex
	pos viewport.WorldPoint
	yaw float64
}

func NewPlayer(pos viewport.WorldPoint, yaw float64) *Player {
	return &Player{pos: pos, yaw: normalizeYaw(yaw)}
}

func (p *Player) Observe() (viewport.WorldPoint, float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pos, p.yaw, true
}

// Turn adds degrees to the heading, kept in [0, 360)
func (p *Player) Turn(degrees float64) {
	p.mu.Lock()
	p.yaw = normalizeYaw(p.yaw + degrees)
	p.mu.Unlock()
}

func normalizeYaw(yaw float64) float64 {
	yaw = math.Mod(yaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	return yaw
}
