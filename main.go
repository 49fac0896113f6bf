package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"regionmap/pkg/config"
	"regionmap/pkg/engine/input"
	"regionmap/pkg/engine/viewport"
	"regionmap/pkg/logging"
	"regionmap/pkg/mapview"
	"regionmap/pkg/renderer"
	ebitenrenderer "regionmap/pkg/renderer/ebiten"
	"regionmap/pkg/tilestore"
	"regionmap/pkg/waypoints"
)

func main() {
	configPath := flag.String("config", "regionmap.toml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := input.ApplyBindings(cfg.Keys); err != nil {
		log.Warn("key bindings", zap.Error(err))
	}

	if err := run(cfg, log); err != nil {
		log.Error("map viewer failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	wps, err := waypoints.Load(cfg.Waypoints.File)
	if err != nil {
		// a broken waypoint file only costs the markers
		log.Warn("waypoints not loaded", zap.String("file", cfg.Waypoints.File), zap.Error(err))
	}

	store, err := tilestore.New(tilestore.OptionsFromConfig(cfg, log.Named("tilestore")))
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := ebitenrenderer.New(cfg, log.Named("ebiten"))
	if err != nil {
		return err
	}
	renderer.SetRenderer(r)

	player := mapview.NewPlayer(viewport.WorldPoint{X: cfg.Player.X, Z: cfg.Player.Z}, cfg.Player.Yaw)
	session := mapview.NewSession(mapview.Options{
		World:          tilestore.NewWorld(store, wps),
		Backend:        renderer.Backend(),
		Observer:       player,
		TileSize:       cfg.Map.TileSize,
		DefaultZoom:    cfg.Map.DefaultZoom,
		MaxCachedTiles: cfg.Map.MaxCachedTiles,
		FetchWorkers:   cfg.Map.FetchWorkers,
		Logger:         log.Named("mapview"),
	})
	defer session.Close()

	log.Info("loaded",
		zap.String("config", cfg.Path()),
		zap.Int("waypoints", len(wps)),
		zap.Int("tile_size", cfg.Map.TileSize))
	return renderer.Run(session)
}
