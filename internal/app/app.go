// internal/app/app.go
package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/PakBeast/PakBeast/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger writing to outW.
func New(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		cfg:    cfg,
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// withLogger attaches the application's logger to the context so that the
// core packages can retrieve it via ctxlog.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
