package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/park285/neonchess/internal/config"
	"github.com/park285/neonchess/internal/gamebuilder"
	"github.com/park285/neonchess/internal/obslog"
	"github.com/park285/neonchess/internal/screen/desktop"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer obslog.Sync()
	logger := obslog.L()

	deps, err := gamebuilder.New(cfg, logger)
	if err != nil {
		logger.Fatal("init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := desktop.New(ctx, deps.Controller, deps.Renderer, logger.Named("desktop"))
	title := deps.Catalog.RenderOr("hud.title", nil, "Neon Chess")
	if err := desktop.Run(w, title, cfg.WindowScale); err != nil {
		logger.Error("window closed with error", zap.Error(err))
		return
	}
	logger.Info("session finished", zap.String("session_id", deps.Controller.SessionID()))
}
