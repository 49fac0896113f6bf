// Package config loads and saves the map viewer settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"regionmap/pkg/engine/viewport"
)

// ErrNoPath is returned by Save when the config was not loaded from a file
var ErrNoPath = errors.New("config has no file path")

type Config struct {
	Map       MapConfig       `toml:"map"`
	Window    WindowConfig    `toml:"window"`
	Logging   LoggingConfig   `toml:"logging"`
	Waypoints WaypointsConfig `toml:"waypoints"`
	Store     StoreConfig     `toml:"store"`
	Player    PlayerConfig    `toml:"player"`

	// Keys rebinds actions: action name (e.g. "pan_north") to key code (e.g. "i")
	Keys map[string]string `toml:"keys"`

	path string
	mu   sync.Mutex
}

type MapConfig struct {
	TileSize       int     `toml:"tile_size"`        // world blocks per region tile edge
	DefaultZoom    float64 `toml:"default_zoom"`     // screen pixels per block when a view opens
	MaxCachedTiles int     `toml:"max_cached_tiles"` // 0 = keep every tile until the view closes
	FetchWorkers   int     `toml:"fetch_workers"`
	PanStep        float64 `toml:"pan_step"` // screen pixels per keyboard pan
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"` // "json" or "console"
	File       string `toml:"file"`   // empty = stderr
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type WaypointsConfig struct {
	File string `toml:"file"`
}

type StoreConfig struct {
	Seed           int64 `toml:"seed"`
	ExploredRadius int   `toml:"explored_radius"` // tiles around the origin that have data, negative for all
	CacheMaxCostMB int64 `toml:"cache_max_cost_mb"`
	LatencyMS      int   `toml:"latency_ms"` // artificial delay per rasterization
}

type PlayerConfig struct {
	X   float64 `toml:"x"`
	Z   float64 `toml:"z"`
	Yaw float64 `toml:"yaw"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Map: MapConfig{
			TileSize:       512,
			DefaultZoom:    1.0,
			MaxCachedTiles: 0,
			FetchWorkers:   4,
			PanStep:        32,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Region Map",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Store: StoreConfig{
			Seed:           1,
			ExploredRadius: 6,
			CacheMaxCostMB: 256,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults are returned and later saves create the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges. An out-of-range zoom is clamped, not rejected.
func (c *Config) Validate() error {
	if c.Map.TileSize <= 0 {
		return fmt.Errorf("map.tile_size must be positive, got %d", c.Map.TileSize)
	}
	if c.Map.MaxCachedTiles < 0 {
		return fmt.Errorf("map.max_cached_tiles must not be negative, got %d", c.Map.MaxCachedTiles)
	}
	if c.Map.FetchWorkers < 1 {
		return fmt.Errorf("map.fetch_workers must be at least 1, got %d", c.Map.FetchWorkers)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Store.CacheMaxCostMB < 0 || c.Store.LatencyMS < 0 {
		return errors.New("store settings must not be negative")
	}
	c.Map.DefaultZoom = viewport.ClampZoom(c.Map.DefaultZoom)
	return nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	return c.path
}

// SetDefaultZoom stores the zoom a new view should open with and saves the file
func (c *Config) SetDefaultZoom(zoom float64) error {
	c.mu.Lock()
	c.Map.DefaultZoom = viewport.ClampZoom(zoom)
	c.mu.Unlock()
	return c.Save()
}

// Save writes the config back to the file it was loaded from
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return ErrNoPath
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("write config %s: %w", c.path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config %s: %w", c.path, err)
	}
	return nil
}
