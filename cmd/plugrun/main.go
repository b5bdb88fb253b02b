package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/plugrun/internal/app"
	"github.com/vk/plugrun/internal/cli"
	"github.com/vk/plugrun/internal/manifest"
	"github.com/vk/plugrun/internal/registry"
	"github.com/vk/plugrun/internal/resolve"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(version)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps failure kinds onto the exit codes the engine's tooling
// contract defines: 600 for missing projects and unregistered plugins,
// 601 for manifest parse failures, 602 for dependency cycles, 620 for
// missing engine tools, 1 for everything else.
func exitCode(err error) int {
	var (
		notFound *manifest.NotFoundError
		unknown  *registry.UnknownPluginError
		parse    *manifest.ParseError
		cycle    *resolve.CycleError
		tool     *app.ToolNotFoundError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &unknown):
		return 600
	case errors.As(err, &parse):
		return 601
	case errors.As(err, &cycle):
		return 602
	case errors.As(err, &tool):
		return 620
	}
	return 1
}
