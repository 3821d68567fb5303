// Package server initializes and runs the gallery HTTP service.
// It builds the configured storage backend, opens it, serves the JSON API
// and closes the backend on graceful shutdown.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/dmitrijs2005/gallery/internal/repositories/gallery"
	"github.com/dmitrijs2005/gallery/internal/repositories/repomanager"
	"github.com/dmitrijs2005/gallery/internal/server/api"
	"github.com/dmitrijs2005/gallery/internal/server/config"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  gallery.DataAccess
}

// NewApp builds the logger and the (still closed) backend described by c.
func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdout)
}

func newApp(c *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(logOut, c.LogFormat, c.LogLevel)

	backend, err := repomanager.ParseBackend(c.Backend)
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}

	store, err := repomanager.New(repomanager.Settings{Backend: backend, DSN: c.DatabaseDSN}, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{config: c, logger: logger, store: store}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run opens the backend and serves HTTP until ctx is cancelled or a
// termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.Backend)
	app.initSignalHandler(cancelFunc)

	if err := app.store.Open(ctx); err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer func() {
		if err := app.store.Close(); err != nil {
			app.logger.Error(ctx, "failed to close backend", "error", err)
		}
	}()

	srv := api.NewServer(api.Options{
		Address:         app.config.HTTPAddr,
		ReadTimeout:     app.config.ReadTimeout,
		WriteTimeout:    app.config.WriteTimeout,
		ShutdownTimeout: app.config.ShutdownTimeout,
	}, app.store, app.logger)

	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
