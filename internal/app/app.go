package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/plugrun/internal/ctxlog"
	"github.com/vk/plugrun/internal/registry"
)

// App encapsulates the tool's dependencies, configuration, and operations.
type App struct {
	logW   io.Writer
	logger *slog.Logger
	config *Config
	reg    *registry.Registry
}

// NewApp constructs a fully initialized App: an isolated logger and a
// loaded plugin registry.
func NewApp(logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	reg, err := registry.Load(ctx, cfg.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load plugin registry: %w", err)
	}

	return &App{
		logW:   logW,
		logger: logger,
		config: cfg,
		reg:    reg,
	}, nil
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Registry returns the loaded plugin registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.reg
}
