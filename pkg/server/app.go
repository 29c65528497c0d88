// Package server owns the application lifecycle: start the HTTP
// server, wait for a signal, drain and close everything.
package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/abhinavomanakuttan/leaf-net/internal/domain/repository"
	"github.com/abhinavomanakuttan/leaf-net/pkg/cache"
	"github.com/abhinavomanakuttan/leaf-net/pkg/config"
	xhttp "github.com/abhinavomanakuttan/leaf-net/pkg/http"
	"github.com/abhinavomanakuttan/leaf-net/pkg/logger"
)

// App encapsulates the application lifecycle.
type App struct {
	cfg        *config.Config
	handler    xhttp.Handler
	publisher  repository.Publisher
	cache      cache.Service
	log        *logger.Logger
	httpServer *xhttp.Server
}

// New creates an App with all dependencies.
func New(cfg *config.Config, handler xhttp.Handler, publisher repository.Publisher, c cache.Service, log *logger.Logger) *App {
	return &App{
		cfg:       cfg,
		handler:   handler,
		publisher: publisher,
		cache:     c,
		log:       log,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler, a.log,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(a.cfg.Metrics.Path),
		xhttp.WithCORS(true),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", logger.Error(err))
		return err
	}
	a.log.Info("server started",
		logger.Int("port", a.cfg.Server.Port),
		logger.String("environment", a.cfg.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", logger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", logger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", logger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
