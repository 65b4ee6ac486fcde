package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"PriceLens/internal/usecase"
	pkgcache "PriceLens/pkg/cache"
	"PriceLens/pkg/config"
	xhttp "PriceLens/pkg/http"
	applogger "PriceLens/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	refresher  *usecase.SnapshotRefresher
	cache      pkgcache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler xhttp.Handler,
	refresher *usecase.SnapshotRefresher,
	cache pkgcache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    l,
		handler:   handler,
		refresher: refresher,
		cache:     cache,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metricsPath := a.cfg.Metrics.Path
	if !a.cfg.Metrics.Enabled {
		metricsPath = ""
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithServerLogger(a.logger),
	)

	if a.refresher != nil {
		if err := a.refresher.Start(ctx); err != nil {
			a.logger.Error("snapshot refresher start error", applogger.Error(err))
			return err
		}
		a.logger.Info("snapshot refresher started",
			applogger.Duration("interval_ms", a.cfg.Cache.RefreshInterval))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("service started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.refresher != nil {
		if err := a.refresher.Shutdown(ctx); err != nil {
			a.logger.Warn("refresher shutdown error", applogger.Error(err))
		}
	}

	if err := a.httpServer.Stop(ctx); err != nil {
		a.logger.Error("http server shutdown error", applogger.Error(err))
		return err
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
