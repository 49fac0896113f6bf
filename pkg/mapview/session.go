// Package mapview runs one open overview-map view: it owns the view state and
// the tile image cache, routes pointer input, and produces the list of draw
// commands for each frame.
package mapview

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"regionmap/pkg/engine/input"
	"regionmap/pkg/engine/tilecache"
	"regionmap/pkg/engine/viewport"
	"regionmap/pkg/i18n"
	"regionmap/pkg/waypoints"
)

// World is the map data context a session draws from
type World interface {
	Provider() tilecache.Provider
	Waypoints() []waypoints.Waypoint
}

// Observer reports the local player's position and heading in degrees
type Observer interface {
	Observe() (pos viewport.WorldPoint, yaw float64, ok bool)
}

// Options configures a Session
type Options struct {
	// World and Backend are required to draw tiles; without them every frame
	// shows the unavailable message
	World    World
	Backend  tilecache.Backend
	Observer Observer

	TileSize       int
	DefaultZoom    float64
	MaxCachedTiles int
	FetchWorkers   int
	Rasterize      tilecache.Rasterizer

	Logger *zap.Logger
}

// Session is the lifetime-scoped state of one open map view. All methods must
// be called from the host's render goroutine.
type Session struct {
	world       World
	observer    Observer
	tileSize    int
	defaultZoom float64

	view  *viewport.Viewport
	ctrl  *input.Controller
	cache *tilecache.Cache
	log   *zap.Logger

	frames    int
	closed    bool
	closeOnce sync.Once
}

// NewSession opens a view centered on the observer, or on the origin when the
// observer has no position.
func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	s := &Session{
		world:       opts.World,
		observer:    opts.Observer,
		tileSize:    opts.TileSize,
		defaultZoom: viewport.ClampZoom(opts.DefaultZoom),
		log:         opts.Logger,
	}

	var center viewport.WorldPoint
	if s.observer != nil {
		if pos, _, ok := s.observer.Observe(); ok {
			center = pos
		}
	}
	s.view = viewport.New(center, s.defaultZoom)
	s.ctrl = input.NewController(s.view)

	if opts.World != nil && opts.Backend != nil && opts.TileSize > 0 {
		s.cache = tilecache.New(tilecache.Options{
			Backend:    opts.Backend,
			Provider:   opts.World.Provider(),
			Rasterize:  opts.Rasterize,
			MaxEntries: opts.MaxCachedTiles,
			Workers:    opts.FetchWorkers,
			Logger:     opts.Logger.Named("tilecache"),
		})
	}

	s.log.Info("map session opened",
		zap.Float64("x", center.X),
		zap.Float64("z", center.Z),
		zap.Float64("zoom", s.view.Zoom),
		zap.Bool("available", s.cache != nil))
	return s
}

// Center returns the world point at the middle of the view
func (s *Session) Center() viewport.WorldPoint {
	return s.view.Center
}

// Zoom returns the current scale in screen pixels per block
func (s *Session) Zoom() float64 {
	return s.view.Zoom
}

// CacheStats returns tile cache counters; zero when no cache exists
func (s *Session) CacheStats() tilecache.Stats {
	if s.cache == nil {
		return tilecache.Stats{}
	}
	return s.cache.Stats()
}

// OnPointerDown handles a button press at (x, y) on a width x height screen
func (s *Session) OnPointerDown(x, y float64, button input.Button, width, height int) bool {
	return s.ctrl.PointerDown(x, y, button, width, height)
}

// OnPointerUp handles a button release
func (s *Session) OnPointerUp(button input.Button) bool {
	return s.ctrl.PointerUp(button)
}

// OnPointerDrag handles pointer motion by (dx, dy) pixels with button held
func (s *Session) OnPointerDrag(button input.Button, dx, dy float64) bool {
	return s.ctrl.PointerDrag(button, dx, dy)
}

// OnScroll handles a wheel step; positive vertical zooms in
func (s *Session) OnScroll(vertical float64) bool {
	return s.ctrl.Scroll(vertical)
}

// OnIntent handles a keyboard intent. ActionClose is left to the host.
func (s *Session) OnIntent(intent input.Intent, panStep float64) bool {
	switch intent.Action {
	case input.ActionRecenter:
		if s.observer == nil {
			return false
		}
		pos, _, ok := s.observer.Observe()
		if !ok {
			return false
		}
		s.view.Center = pos
		return true
	case input.ActionTurnLeft, input.ActionTurnRight:
		t, ok := s.observer.(Turner)
		if !ok {
			return false
		}
		if intent.Action == input.ActionTurnLeft {
			t.Turn(-TurnStep)
		} else {
			t.Turn(TurnStep)
		}
		return true
	}
	return s.ctrl.Apply(intent, panStep, s.defaultZoom)
}

// OnFrame builds the draw commands for a width x height screen
func (s *Session) OnFrame(width, height int) *Frame {
	s.frames++
	f := &Frame{Width: width, Height: height}
	f.add(FillRect{X1: float64(width), Y1: float64(height), Color: colorBackgroundDim})

	f.MapDrawn = s.drawMap(f, width, height)
	if f.MapDrawn && f.MissingTiles > 0 {
		f.add(Text{
			X:      overlayMargin,
			Y:      overlayMargin + loadingLineOffset,
			Text:   fmt.Sprintf(i18n.Get("TILES_LOADING"), f.MissingTiles),
			Color:  colorHelp,
			Shadow: true,
		})
	}
	if !f.MapDrawn {
		f.add(Text{
			X:        float64(width / 2),
			Y:        float64(height / 2),
			Text:     i18n.Get("MAP_UNAVAILABLE"),
			Color:    colorText,
			Shadow:   true,
			Centered: true,
		})
	}
	s.drawOverlay(f, width, height)
	return f
}

// drawMap places every visible tile that has an image. It reports false when
// the map cannot be drawn at all.
func (s *Session) drawMap(f *Frame, width, height int) bool {
	if s.closed || s.world == nil || s.cache == nil {
		return false
	}
	tiles := s.view.VisibleTiles(width, height, s.tileSize)
	if len(tiles) == 0 {
		return false
	}

	s.cache.Pump()
	tilePixels := s.view.TilePixelSize(s.tileSize)
	f.VisibleTiles = len(tiles)
	for _, coord := range tiles {
		img := s.cache.Get(coord)
		if img == nil {
			f.MissingTiles++
			continue
		}
		pos := s.view.WorldToScreen(coord.Origin(s.tileSize), width, height)
		f.add(TexturedQuad{
			Tile:  coord,
			Image: img,
			X:     pos.X,
			Y:     pos.Y,
			W:     tilePixels,
			H:     tilePixels,
		})
	}
	return true
}

// Close releases every cached tile image. Later frames show the unavailable
// message. Close is safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed = true
		stats := s.CacheStats()
		if s.cache != nil {
			s.cache.Close()
		}
		s.log.Info("map session closed",
			zap.Int("frames", s.frames),
			zap.Int("tiles", stats.Entries),
			zap.Int("uploads", stats.Uploads),
			zap.Float64("zoom", s.view.Zoom))
	})
}
