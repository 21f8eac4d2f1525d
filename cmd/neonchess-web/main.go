package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/park285/neonchess/internal/config"
	"github.com/park285/neonchess/internal/game"
	"github.com/park285/neonchess/internal/gamebuilder"
	"github.com/park285/neonchess/internal/obslog"
	"github.com/park285/neonchess/internal/screen/webscreen"
)

const shutdownTimeout = 5 * time.Second

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

	screen := webscreen.New(deps.Renderer,
		webscreen.WithCatalog(deps.Catalog),
		webscreen.WithLogger(logger.Named("web")),
	)
	httpSrv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           screen.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("display server listening", zap.String("addr", cfg.WebAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	runCtx, cancel := context.WithCancel(ctx)
	go func() {
		if err := <-serveErr; err != nil {
			logger.Error("display server failed", zap.Error(err))
			cancel()
		}
	}()

	err = game.Run(runCtx, deps.Controller, screen)
	cancel()
	switch {
	case err == nil:
		logger.Info("session finished", zap.String("session_id", deps.Controller.SessionID()))
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested")
	default:
		logger.Error("game loop stopped", zap.Error(err))
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	screen.End(shutdownCtx, deps.Controller.Snapshot())
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("display server shutdown", zap.Error(err))
	}
}
