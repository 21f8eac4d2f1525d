package gamebuilder

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/park285/neonchess/internal/config"
	"github.com/park285/neonchess/internal/game"
	"github.com/park285/neonchess/internal/msgcat"
	"github.com/park285/neonchess/internal/render"
)

// Deps is everything a screen needs to run one session.
type Deps struct {
	Catalog    *msgcat.Catalog
	Renderer   *render.Renderer
	Controller *game.Controller
}

func New(cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	renderer := render.New(cfg.Layout,
		render.WithCatalog(catalog),
		render.WithPlayerNames(cfg.PinkName, cfg.BlueName),
		render.WithLogger(logger.Named("render")),
	)
	ctrl := game.NewController(cfg.Layout, logger.Named("game"), game.WithHints(cfg.ShowHints))

	logger.Info("session ready",
		zap.String("session_id", ctrl.SessionID()),
		zap.String("pink", cfg.PinkName),
		zap.String("blue", cfg.BlueName),
		zap.Bool("hints", cfg.ShowHints),
	)
	return &Deps{Catalog: catalog, Renderer: renderer, Controller: ctrl}, nil
}
