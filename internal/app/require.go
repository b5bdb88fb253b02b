package app

import (
	"context"
	"path/filepath"

	"github.com/vk/plugrun/internal/ctxlog"
	"github.com/vk/plugrun/internal/manifest"
	"github.com/vk/plugrun/internal/publish"
	"github.com/vk/plugrun/internal/resolve"
)

// Require resolves the project's plugin dependencies and writes the
// ordered extension manifest next to the project file. The pipeline runs
// one way: required identifiers, transitive closure, deterministic load
// order, publishable records, atomic file replacement.
func (a *App) Require(ctx context.Context, projectFile string) error {
	logger := ctxlog.FromContext(ctx)

	project, err := manifest.LoadFile(projectFile)
	if err != nil {
		return err
	}
	if err := a.reg.CheckManifestEngine(project); err != nil {
		return err
	}
	logger.Debug("Project manifest loaded.", "name", project.Name, "requires", len(project.Require))

	closure, err := resolve.Closure(project.Require, a.reg)
	if err != nil {
		return err
	}
	if err := a.reg.CheckClosureEngine(closure); err != nil {
		return err
	}
	logger.Debug("Dependency closure built.", "plugins", len(closure))

	ordered, err := resolve.Sequence(closure)
	if err != nil {
		return err
	}

	records, err := publish.Records(ordered, a.reg, a.config.Platform, a.config.BuildConfig)
	if err != nil {
		return err
	}

	outPath := filepath.Join(filepath.Dir(projectFile), publish.DefaultFileName)
	if err := publish.Write(outPath, records); err != nil {
		return err
	}

	logger.Info("Extension manifest written.", "path", outPath, "plugins", len(records))
	return nil
}
