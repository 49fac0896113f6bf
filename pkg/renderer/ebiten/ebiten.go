package ebiten

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"regionmap/pkg/config"
	"regionmap/pkg/engine/tilecache"
	"regionmap/pkg/mapview"
)

// New creates an Ebiten renderer sized from cfg.Window
func New(cfg *config.Config, log *zap.Logger) (*EbitenRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	src, err := loadSansFontSource()
	if err != nil {
		return nil, err
	}
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)

	return &EbitenRenderer{
		cfg:            cfg,
		log:            log,
		windowWidth:    cfg.Window.Width,
		windowHeight:   cfg.Window.Height,
		backend:        &imageBackend{},
		sansFontSource: src,
		whitePixel:     white,
		keyRepeatState: make(map[string]keyRepeatInfo),
	}, nil
}

// Backend returns the tile image backend
func (e *EbitenRenderer) Backend() tilecache.Backend {
	return e.backend
}

// Run opens the window and drives s until the view is closed
func (e *EbitenRenderer) Run(s *mapview.Session) error {
	e.session = s
	defer e.closeView()

	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(e.cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth = outsideWidth
	e.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// closeView closes the session and persists the zoom it ended at
func (e *EbitenRenderer) closeView() {
	if e.closed || e.session == nil {
		return
	}
	e.closed = true
	e.session.Close()

	if e.cfg.Path() == "" {
		return
	}
	if err := e.cfg.SetDefaultZoom(e.session.Zoom()); err != nil {
		e.log.Warn("could not save zoom preference", zap.Error(err))
	}
}
