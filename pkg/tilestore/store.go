// Package tilestore is a standalone tile provider: it generates procedural
// region data, rasterizes it on demand and keeps rendered buffers in a
// cost-bounded cache.
package tilestore

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"regionmap/pkg/config"
	"regionmap/pkg/engine/pixel"
	"regionmap/pkg/engine/tilecache"
	"regionmap/pkg/engine/viewport"
)

// ErrClosed is returned by fetches on a closed Store
var ErrClosed = errors.New("tile store closed")

// Options configures a Store
type Options struct {
	TileSize int
	Seed     int64
	// ExploredRadius is the Chebyshev distance, in tiles, from the origin tile
	// beyond which regions have no data. Negative means unlimited.
	ExploredRadius int
	MaxCostBytes   int64
	// Latency delays every rasterization
	Latency time.Duration
	Logger  *zap.Logger
}

// Store implements tilecache.Provider over procedural regions
type Store struct {
	opts   Options
	log    *zap.Logger
	cache  *ristretto.Cache[uint64, *pixel.Buffer]
	group  singleflight.Group
	closed atomic.Bool

	rasterized atomic.Int64
}

// New creates a Store. TileSize must be positive.
func New(opts Options) (*Store, error) {
	if opts.TileSize <= 0 {
		return nil, errors.New("tile size must be positive")
	}
	if opts.MaxCostBytes <= 0 {
		opts.MaxCostBytes = 256 << 20
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	maxTiles := opts.MaxCostBytes / int64(opts.TileSize*opts.TileSize*4)
	c, err := ristretto.NewCache(&ristretto.Config[uint64, *pixel.Buffer]{
		NumCounters:        max(maxTiles*10, 1000),
		MaxCost:            opts.MaxCostBytes,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &Store{opts: opts, log: opts.Logger, cache: c}, nil
}

// TileSize is the region edge length in blocks
func (s *Store) TileSize() int {
	return s.opts.TileSize
}

// Explored reports whether coord has region data
func (s *Store) Explored(coord viewport.TileCoord) bool {
	r := s.opts.ExploredRadius
	if r < 0 {
		return true
	}
	return abs(coord.X) <= r && abs(coord.Z) <= r
}

// Region returns the region data of coord, or nil when it is unexplored
func (s *Store) Region(coord viewport.TileCoord) tilecache.Region {
	if !s.Explored(coord) {
		return nil
	}
	return newRegion(coord, s.opts.TileSize, s.opts.Seed)
}

// FetchRenderedTile returns the rendered buffer of coord. Repeated calls
// return the same buffer until the tile is marked dirty or evicted. A nil
// buffer means the region has no data.
func (s *Store) FetchRenderedTile(ctx context.Context, coord viewport.TileCoord, rasterize tilecache.Rasterizer) (*pixel.Buffer, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if !s.Explored(coord) {
		return nil, nil
	}
	key := tileKey(coord)
	if buf, ok := s.cache.Get(key); ok {
		return buf, nil
	}
	if rasterize == nil {
		rasterize = tilecache.RasterizeRegion
	}

	v, err, _ := s.group.Do(coord.String(), func() (any, error) {
		if buf, ok := s.cache.Get(key); ok {
			return buf, nil
		}
		if s.opts.Latency > 0 {
			t := time.NewTimer(s.opts.Latency)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-t.C:
			}
		}
		if s.closed.Load() {
			return nil, ErrClosed
		}

		start := time.Now()
		buf := rasterize(newRegion(coord, s.opts.TileSize, s.opts.Seed))
		if buf == nil {
			return nil, nil
		}
		s.rasterized.Add(1)
		s.cache.Set(key, buf, int64(len(buf.Pix)*4))
		s.cache.Wait()
		s.log.Debug("tile rasterized",
			zap.Stringer("tile", coord),
			zap.Duration("took", time.Since(start)))
		return buf, nil
	})
	if err != nil || v == nil {
		return nil, err
	}
	return v.(*pixel.Buffer), nil
}

// MarkDirty drops the rendered buffer of coord; the next fetch rasterizes again
func (s *Store) MarkDirty(coord viewport.TileCoord) {
	s.cache.Del(tileKey(coord))
	s.cache.Wait()
}

// Rasterized counts rasterizations since creation
func (s *Store) Rasterized() int64 {
	return s.rasterized.Load()
}

// Close stops the store. Later fetches return ErrClosed.
func (s *Store) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.log.Info("tile store closed", zap.Int64("rasterized", s.rasterized.Load()))
	s.cache.Close()
}

// tileKey packs a tile coordinate into a cache key
func tileKey(c viewport.TileCoord) uint64 {
	return uint64(uint32(int32(c.X)))<<32 | uint64(uint32(int32(c.Z)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// OptionsFromConfig builds store options from the [store] and [map] sections
func OptionsFromConfig(cfg *config.Config, log *zap.Logger) Options {
	return Options{
		TileSize:       cfg.Map.TileSize,
		Seed:           cfg.Store.Seed,
		ExploredRadius: cfg.Store.ExploredRadius,
		MaxCostBytes:   cfg.Store.CacheMaxCostMB << 20,
		Latency:        time.Duration(cfg.Store.LatencyMS) * time.Millisecond,
		Logger:         log,
	}
}
