// Package tilecache keeps the display images of region tiles for one open map
// view. Tiles are fetched from a Provider off the render thread, converted to
// backend channel order and uploaded only when the provider hands back a
// different buffer than the one already on screen.
//
// A Cache is owned by a single render loop: Get, Pump and Close must be
// called from that goroutine only. Fetch goroutines talk to it through a
// channel drained by Pump.
package tilecache

import (
	"context"
	"math"
	"sync"

	"github.com/zyedidia/generic/cache"
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"regionmap/pkg/engine/pixel"
	"regionmap/pkg/engine/viewport"
)

const (
	defaultWorkers   = 4
	resultBufferSize = 256
)

// Options configures a Cache
type Options struct {
	Backend   Backend
	Provider  Provider
	Rasterize Rasterizer // defaults to RasterizeRegion

	// MaxEntries bounds the number of cached tiles; least recently drawn tiles
	// are released first. Zero keeps every tile until Close.
	MaxEntries int

	// Workers caps concurrent provider fetches
	Workers int

	Logger *zap.Logger
}

// Stats counts cache activity since creation
type Stats struct {
	Entries   int
	InFlight  int
	Uploads   int // images created or rewritten
	Reuses    int // results whose buffer was already on screen
	Evictions int
	Discarded int // results that arrived after Close
}

type entry struct {
	image  Image
	source *pixel.Buffer
	// available is false while the provider reports no data for the tile;
	// the image is kept for reuse but not drawn
	available bool
}

type fetchResult struct {
	coord viewport.TileCoord
	buf   *pixel.Buffer
	err   error
}

// Cache maps tile coordinates to uploaded display images
type Cache struct {
	backend   Backend
	provider  Provider
	rasterize Rasterizer
	log       *zap.Logger

	entries  *cache.Cache[viewport.TileCoord, *entry]
	inflight mapset.Set[viewport.TileCoord]
	results  chan fetchResult
	sem      *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc

	scratch   []byte
	stats     Stats
	closed    bool
	closeOnce sync.Once
}

// New creates an empty cache
func New(opts Options) *Cache {
	if opts.Rasterize == nil {
		opts.Rasterize = RasterizeRegion
	}
	if opts.Workers < 1 {
		opts.Workers = defaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	capacity := opts.MaxEntries
	if capacity <= 0 {
		capacity = math.MaxInt
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		backend:   opts.Backend,
		provider:  opts.Provider,
		rasterize: opts.Rasterize,
		log:       opts.Logger,
		entries:   cache.New[viewport.TileCoord, *entry](capacity),
		inflight:  mapset.New[viewport.TileCoord](),
		results:   make(chan fetchResult, resultBufferSize),
		sem:       semaphore.NewWeighted(int64(opts.Workers)),
		ctx:       ctx,
		cancel:    cancel,
	}
	c.entries.SetEvictCallback(c.evict)
	return c
}

// Get returns the image currently held for coord, or nil when the tile has no
// data yet. Unless a fetch for coord is already running, it starts one so the
// image is created or refreshed once the provider answers. Get never blocks.
func (c *Cache) Get(coord viewport.TileCoord) Image {
	if c.closed {
		return nil
	}
	c.request(coord)
	if e, ok := c.entries.Get(coord); ok && e.available {
		return e.image
	}
	return nil
}

// Pump applies every fetch result that has completed since the last call
func (c *Cache) Pump() {
	for {
		select {
		case r := <-c.results:
			c.apply(r)
		default:
			return
		}
	}
}

// Len returns the number of cached tiles
func (c *Cache) Len() int {
	return c.entries.Size()
}

// Stats returns a copy of the activity counters
func (c *Cache) Stats() Stats {
	s := c.stats
	s.Entries = c.entries.Size()
	s.InFlight = c.inflight.Size()
	return s
}

// Close cancels outstanding fetches and releases every cached image. Results
// that complete afterwards are discarded. Close is safe to call more than once.
func (c *Cache) Close() {
	c.closeOnce.Do(func() {
		c.closed = true
		c.cancel()

		released := 0
		c.entries.Each(func(coord viewport.TileCoord, e *entry) {
			e.image.Release()
			released++
		})
		// replacing the LRU drops every entry without running the evict callback
		c.entries = cache.New[viewport.TileCoord, *entry](1)
		c.inflight = mapset.New[viewport.TileCoord]()
		c.scratch = nil

		c.log.Debug("tile cache closed", zap.Int("released", released))
	})
}

func (c *Cache) request(coord viewport.TileCoord) {
	if c.inflight.Has(coord) {
		return
	}
	c.inflight.Put(coord)

	go func() {
		if err := c.sem.Acquire(c.ctx, 1); err != nil {
			return
		}
		defer c.sem.Release(1)

		buf, err := c.provider.FetchRenderedTile(c.ctx, coord, c.rasterize)
		select {
		case c.results <- fetchResult{coord: coord, buf: buf, err: err}:
		case <-c.ctx.Done():
		}
	}()
}

func (c *Cache) apply(r fetchResult) {
	if c.closed {
		c.stats.Discarded++
		return
	}
	c.inflight.Remove(r.coord)

	if r.err != nil {
		c.log.Debug("tile fetch failed", zap.Stringer("tile", r.coord), zap.Error(r.err))
	}

	e, ok := c.entries.Get(r.coord)
	if r.err != nil || !validBuffer(r.buf) {
		if ok {
			e.available = false
		}
		return
	}
	if !ok {
		e = &entry{image: c.backend.NewImage(r.buf.Width, r.buf.Height)}
		c.upload(e, r.buf)
		c.entries.Put(r.coord, e)
		c.log.Debug("tile uploaded", zap.Stringer("tile", r.coord))
		return
	}
	if e.source == r.buf {
		e.available = true
		c.stats.Reuses++
		return
	}
	if w, h := e.image.Size(); w != r.buf.Width || h != r.buf.Height {
		e.image.Release()
		e.image = c.backend.NewImage(r.buf.Width, r.buf.Height)
	}
	c.upload(e, r.buf)
	c.log.Debug("tile re-uploaded", zap.Stringer("tile", r.coord))
}

func (c *Cache) upload(e *entry, buf *pixel.Buffer) {
	c.scratch = buf.EncodeBackend(c.scratch)
	e.image.WritePixels(c.scratch)
	e.source = buf
	e.available = true
	c.stats.Uploads++
}

// validBuffer reports whether buf holds a non-empty image whose pixel slice
// matches its dimensions
func validBuffer(buf *pixel.Buffer) bool {
	return buf != nil && buf.Width > 0 && buf.Height > 0 && len(buf.Pix) == buf.Width*buf.Height
}

func (c *Cache) evict(coord viewport.TileCoord, e *entry) {
	e.image.Release()
	c.stats.Evictions++
	c.log.Debug("tile evicted", zap.Stringer("tile", coord))
}
