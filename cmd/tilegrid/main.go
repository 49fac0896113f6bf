// Command tilegrid prints the visible tile set of a map view to the terminal,
// one cell per tile in its average color.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gookit/color"
	"go.uber.org/zap"

	"regionmap/pkg/config"
	"regionmap/pkg/devtools"
	"regionmap/pkg/engine/terminal"
	"regionmap/pkg/engine/viewport"
	"regionmap/pkg/logging"
	"regionmap/pkg/tilestore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tilegrid: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "regionmap.toml", "path to the config file")
	width := flag.Int("width", 0, "view width in pixels (default: window width from config)")
	height := flag.Int("height", 0, "view height in pixels (default: window height from config)")
	zoom := flag.Float64("zoom", 0, "zoom in pixels per block (default: map.default_zoom)")
	x := flag.Float64("x", 0, "view center x")
	z := flag.Float64("z", 0, "view center z")
	pngPath := flag.String("png", "", "write the center tile to this PNG file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := tilestore.New(tilestore.OptionsFromConfig(cfg, log.Named("tilestore")))
	if err != nil {
		return err
	}
	defer store.Close()

	view := devtools.ViewOptions{
		Width:    orDefault(*width, cfg.Window.Width),
		Height:   orDefault(*height, cfg.Window.Height),
		TileSize: cfg.Map.TileSize,
		Zoom:     cfg.Map.DefaultZoom,
		Center:   viewport.WorldPoint{X: *x, Z: *z},
	}
	if *zoom > 0 {
		view.Zoom = *zoom
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	grid, err := devtools.BuildGrid(ctx, store, view)
	if err != nil {
		return err
	}

	useColor := terminal.IsTerminal(os.Stdout)
	if !useColor {
		color.Disable()
	}
	if cols, rows := terminal.MaxGridCells(os.Stdout); useColor && (grid.Cols > cols || grid.Rows > rows) {
		log.Warn("grid larger than the terminal",
			zap.Int("cols", grid.Cols), zap.Int("rows", grid.Rows),
			zap.Int("max_cols", cols), zap.Int("max_rows", rows))
	}
	if err := grid.Write(os.Stdout, useColor); err != nil {
		return err
	}

	if *pngPath != "" {
		buf, ok := grid.Buffers[grid.Center]
		if !ok {
			return fmt.Errorf("center tile %v has no data", grid.Center)
		}
		f, err := os.Create(*pngPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := devtools.WriteTilePNG(f, buf); err != nil {
			return fmt.Errorf("write %s: %w", *pngPath, err)
		}
		log.Info("center tile written", zap.String("path", *pngPath), zap.Stringer("tile", grid.Center))
	}
	return nil
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
