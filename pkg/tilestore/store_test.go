package tilestore

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"regionmap/pkg/config"
	"regionmap/pkg/engine/pixel"
	"regionmap/pkg/engine/tilecache"
	"regionmap/pkg/engine/viewport"
)

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	if opts.TileSize == 0 {
		opts.TileSize = 16
	}
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestNew_RejectsBadTileSize(t *testing.T) {
	if _, err := New(Options{TileSize: 0}); err == nil {
		t.Error("New accepted tile size 0")
	}
}

func TestFetch_ReturnsSameBufferUntilDirty(t *testing.T) {
	s := newTestStore(t, Options{Seed: 7, ExploredRadius: 2})
	ctx := context.Background()
	coord := viewport.TileCoord{X: 1, Z: -1}

	first, err := s.FetchRenderedTile(ctx, coord, nil)
	if err != nil || first == nil {
		t.Fatalf("fetch = %v, %v", first, err)
	}
	if first.Width != 16 || first.Height != 16 {
		t.Errorf("buffer = %dx%d, want 16x16", first.Width, first.Height)
	}
	again, _ := s.FetchRenderedTile(ctx, coord, nil)
	if again != first {
		t.Error("second fetch returned a new buffer")
	}

	s.MarkDirty(coord)
	fresh, _ := s.FetchRenderedTile(ctx, coord, nil)
	if fresh == first {
		t.Error("fetch after MarkDirty returned the old buffer")
	}
	if s.Rasterized() != 2 {
		t.Errorf("Rasterized = %d, want 2", s.Rasterized())
	}
}

func TestFetch_UnexploredHasNoData(t *testing.T) {
	s := newTestStore(t, Options{ExploredRadius: 1})
	buf, err := s.FetchRenderedTile(context.Background(), viewport.TileCoord{X: 2, Z: 0}, nil)
	if buf != nil || err != nil {
		t.Errorf("fetch = %v, %v; want nil, nil", buf, err)
	}
	if s.Region(viewport.TileCoord{X: 0, Z: -2}) != nil {
		t.Error("Region returned data outside the explored radius")
	}
	if !s.Explored(viewport.TileCoord{X: -1, Z: 1}) {
		t.Error("corner of the explored square reported unexplored")
	}
}

func TestFetch_Deterministic(t *testing.T) {
	a := newTestStore(t, Options{Seed: 3, ExploredRadius: -1})
	b := newTestStore(t, Options{Seed: 3, ExploredRadius: -1})
	coord := viewport.TileCoord{X: -40, Z: 12}

	ba, _ := a.FetchRenderedTile(context.Background(), coord, nil)
	bb, _ := b.FetchRenderedTile(context.Background(), coord, nil)
	for i := range ba.Pix {
		if ba.Pix[i] != bb.Pix[i] {
			t.Fatalf("pixel %d differs: %#08x vs %#08x", i, ba.Pix[i], bb.Pix[i])
		}
		if pixel.Alpha(ba.Pix[i]) != 0xFF {
			t.Fatalf("pixel %d is not opaque: %#08x", i, ba.Pix[i])
		}
	}
}

func TestFetch_SingleRasterizationWhenConcurrent(t *testing.T) {
	s := newTestStore(t, Options{ExploredRadius: -1, Latency: 20 * time.Millisecond})
	var calls atomic.Int32
	rasterize := func(r tilecache.Region) *pixel.Buffer {
		calls.Add(1)
		return tilecache.RasterizeRegion(r)
	}

	var wg sync.WaitGroup
	bufs := make([]*pixel.Buffer, 8)
	for i := range bufs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bufs[i], _ = s.FetchRenderedTile(context.Background(), viewport.TileCoord{}, rasterize)
		}(i)
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("rasterize called %d times, want 1", calls.Load())
	}
	for i, b := range bufs {
		if b == nil || b != bufs[0] {
			t.Errorf("fetch %d returned a different buffer", i)
		}
	}
}

func TestFetch_HonoursContext(t *testing.T) {
	s := newTestStore(t, Options{ExploredRadius: -1, Latency: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.FetchRenderedTile(ctx, viewport.TileCoord{}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestClose_RejectsFetches(t *testing.T) {
	s := newTestStore(t, Options{})
	s.Close()
	s.Close()
	if _, err := s.FetchRenderedTile(context.Background(), viewport.TileCoord{}, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("err = %v, want ErrClosed", err)
	}
}

func TestTileKey_Distinct(t *testing.T) {
	seen := map[uint64]viewport.TileCoord{}
	for x := -3; x <= 3; x++ {
		for z := -3; z <= 3; z++ {
			c := viewport.TileCoord{X: x, Z: z}
			k := tileKey(c)
			if prev, ok := seen[k]; ok {
				t.Fatalf("%v and %v share key %#x", prev, c, k)
			}
			seen[k] = c
		}
	}
}

func TestBandColor(t *testing.T) {
	tests := []struct {
		h    float64
		want uint32
	}{
		{0.0, 0xFF1B3A6B},
		{0.35, 0xFF2E5FA3},
		{0.5, 0xFF5E9E3A},
		{0.99, 0xFFF2F4F7},
	}
	for _, tt := range tests {
		if got := bandColor(tt.h); got != tt.want {
			t.Errorf("bandColor(%v) = %#08x, want %#08x", tt.h, got, tt.want)
		}
	}
}

func TestTerrainHeight_InRange(t *testing.T) {
	for x := -100.0; x < 100; x += 7.3 {
		for z := -100.0; z < 100; z += 5.1 {
			h := terrainHeight(x, z, 11)
			if h < 0 || h >= 1 {
				t.Fatalf("terrainHeight(%v, %v) = %v, out of [0, 1)", x, z, h)
			}
		}
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Store.LatencyMS = 15
	cfg.Store.CacheMaxCostMB = 2
	opts := OptionsFromConfig(cfg, nil)
	if opts.TileSize != 512 || opts.Seed != 1 || opts.ExploredRadius != 6 {
		t.Errorf("opts = %+v", opts)
	}
	if opts.MaxCostBytes != 2<<20 || opts.Latency != 15*time.Millisecond {
		t.Errorf("cost = %d latency = %v", opts.MaxCostBytes, opts.Latency)
	}
}
