package viewport

import "testing"

func tileSet(tiles []TileCoord) map[TileCoord]int {
	set := make(map[TileCoord]int, len(tiles))
	for _, c := range tiles {
		set[c]++
	}
	return set
}

func TestVisibleTiles_800x600(t *testing.T) {
	// radiusX = ceil(800/256)/2+1 = 4/2+1 = 3, radiusZ = ceil(600/256)/2+1 = 3/2+1 = 2
	tiles := VisibleTiles(800, 600, 256, 1.0, WorldPoint{})
	if len(tiles) != 7*5 {
		t.Fatalf("len(tiles) = %d, want 35", len(tiles))
	}
	set := tileSet(tiles)
	for x := -3; x <= 3; x++ {
		for z := -2; z <= 2; z++ {
			if set[TileCoord{x, z}] != 1 {
				t.Errorf("tile %d:%d present %d times, want 1", x, z, set[TileCoord{x, z}])
			}
		}
	}
}

func TestVisibleTiles_SquareScreen(t *testing.T) {
	// 512/256 = 2 -> 2/2+1 = 2 on both axes
	tiles := VisibleTiles(512, 512, 256, 1.0, WorldPoint{})
	if len(tiles) != 25 {
		t.Fatalf("len(tiles) = %d, want 25", len(tiles))
	}
	set := tileSet(tiles)
	for x := -2; x <= 2; x++ {
		for z := -2; z <= 2; z++ {
			if set[TileCoord{x, z}] != 1 {
				t.Errorf("tile %d:%d missing", x, z)
			}
		}
	}
}

func TestVisibleTiles_ContainsCenterTile(t *testing.T) {
	centers := []WorldPoint{{0, 0}, {511.99, 0}, {-0.01, -0.01}, {123456.7, -98765.4}}
	zooms := []float64{MinZoom, 1, MaxZoom}
	for _, c := range centers {
		for _, z := range zooms {
			tiles := VisibleTiles(1280, 720, 512, z, c)
			want := TileOf(c, 512)
			if tileSet(tiles)[want] != 1 {
				t.Errorf("center %v zoom %v: tile %v not in visible set", c, z, want)
			}
		}
	}
}

func TestVisibleTiles_CoversScreen(t *testing.T) {
	// every screen corner must land in a visible tile
	v := New(WorldPoint{X: 255.5, Z: -0.5}, 0.7)
	tiles := tileSet(v.VisibleTiles(1000, 700, 256))
	corners := []ScreenPoint{{0, 0}, {1000, 0}, {0, 700}, {1000, 700}}
	for _, s := range corners {
		c := TileOf(v.ScreenToWorld(s, 1000, 700), 256)
		if tiles[c] == 0 {
			t.Errorf("corner %v lies in tile %v which is not visible", s, c)
		}
	}
}

func TestVisibleTiles_GrowsAsZoomDecreases(t *testing.T) {
	prev := 0
	for zoom := MaxZoom; zoom >= MinZoom; zoom *= 0.9 {
		n := len(VisibleTiles(800, 600, 64, zoom, WorldPoint{X: 10, Z: 10}))
		if n < prev {
			t.Fatalf("zoom %v: %d tiles, fewer than %d at a larger zoom", zoom, n, prev)
		}
		prev = n
	}
}

func TestVisibleTiles_MinimumRadius(t *testing.T) {
	// a screen much smaller than a tile still gets a 3x3 neighborhood
	tiles := VisibleTiles(1, 1, 512, MaxZoom, WorldPoint{})
	if len(tiles) != 9 {
		t.Errorf("len(tiles) = %d, want 9", len(tiles))
	}
}

func TestVisibleTiles_DegenerateZoom(t *testing.T) {
	if tiles := VisibleTiles(800, 600, 2, 0.4, WorldPoint{}); tiles != nil {
		t.Errorf("VisibleTiles with 0.8px tiles = %d tiles, want nil", len(tiles))
	}
	if tiles := VisibleTiles(800, 600, 1, 1, WorldPoint{}); tiles != nil {
		t.Errorf("VisibleTiles with 1px tiles = %d tiles, want nil", len(tiles))
	}
}
