package app

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/vk/plugrun/internal/ctxlog"
	"github.com/vk/plugrun/internal/manifest"
	"github.com/vk/plugrun/internal/registry"
)

// Engine executables the launch commands map to.
const (
	ToolLauncher = "launcher"
	ToolServer   = "game_server"
	ToolEditor   = "editor"
)

// ToolNotFoundError indicates a required engine executable that is not
// present under the engine installation.
type ToolNotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("'%s' not found", e.Path)
}

// engine returns the registry's engine description or an error when the
// registry does not declare one.
func (a *App) engine() (*registry.Engine, error) {
	eng := a.reg.Engine()
	if eng == nil {
		return nil, fmt.Errorf("registry '%s' does not declare an engine installation", a.config.RegistryPath)
	}
	return eng, nil
}

// Launch starts the named engine tool detached, pointing it at the
// project file. The project manifest is loaded first so a broken project
// fails here rather than inside the engine.
func (a *App) Launch(ctx context.Context, projectFile, tool string) error {
	logger := ctxlog.FromContext(ctx)

	if _, err := manifest.LoadFile(projectFile); err != nil {
		return err
	}
	eng, err := a.engine()
	if err != nil {
		return err
	}

	toolPath := eng.ToolPath(a.config.Platform, tool)
	if _, err := os.Stat(toolPath); err != nil {
		return &ToolNotFoundError{Path: toolPath}
	}

	absProject, err := filepath.Abs(projectFile)
	if err != nil {
		return err
	}

	cmd := exec.Command(toolPath, "-project", absProject)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start '%s': %w", toolPath, err)
	}
	logger.Info("Engine tool started.", "tool", toolPath, "pid", cmd.Process.Pid)

	// The tool outlives this process.
	return cmd.Process.Release()
}

// Metagen runs the engine's asset compiler over the project's asset
// directory and waits for it to finish.
func (a *App) Metagen(ctx context.Context, projectFile string) error {
	logger := ctxlog.FromContext(ctx)

	project, err := manifest.LoadFile(projectFile)
	if err != nil {
		return err
	}
	if project.Assets == "" {
		return fmt.Errorf("project '%s' declares no asset directory", project.Name)
	}
	eng, err := a.engine()
	if err != nil {
		return err
	}

	compilerPath := eng.AssetCompilerPath()
	if _, err := os.Stat(compilerPath); err != nil {
		return &ToolNotFoundError{Path: compilerPath}
	}

	assetPath := filepath.Join(project.Dir(), project.Assets)
	cmd := exec.CommandContext(ctx, compilerPath, "-src", assetPath)
	cmd.Stdout = a.logW
	cmd.Stderr = a.logW

	logger.Info("Running asset compiler.", "compiler", compilerPath, "assets", assetPath)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("asset compiler failed: %w", err)
	}
	return nil
}
