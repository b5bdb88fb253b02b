package app

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Platforms the engine ships binaries for.
var platforms = []string{"win_x86", "win_x64", "linux_x64"}

// Build configurations the engine ships binaries for.
var buildConfigs = []string{"Debug", "Release", "RelWithDebInfo", "MinSizeRel"}

// Config holds all the configuration an App instance needs to run.
type Config struct {
	// RegistryPath locates the plugin registry file. Empty means the
	// per-user default.
	RegistryPath string
	// Platform selects the binary flavor published and launched.
	Platform string
	// BuildConfig selects the build configuration of plugin binaries.
	BuildConfig string

	LogLevel  string
	LogFormat string
}

// NewConfig validates a Config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Platform == "" {
		cfg.Platform = "win_x64"
	}
	if !slices.Contains(platforms, cfg.Platform) {
		return nil, fmt.Errorf("invalid platform %q: must be one of %v", cfg.Platform, platforms)
	}

	if cfg.BuildConfig == "" {
		cfg.BuildConfig = "RelWithDebInfo"
	}
	if !slices.Contains(buildConfigs, cfg.BuildConfig) {
		return nil, fmt.Errorf("invalid build config %q: must be one of %v", cfg.BuildConfig, buildConfigs)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.RegistryPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine default registry path: %w", err)
		}
		cfg.RegistryPath = filepath.Join(home, ".plugrun", "registry.hcl")
	}

	return &cfg, nil
}
