package cli

import (
	"github.com/spf13/cobra"

	"github.com/vk/plugrun/internal/app"
)

// newLaunchCommand builds one of the engine-tool commands (open, server,
// edit); they differ only in which executable they start.
func newLaunchCommand(opts *rootOptions, use, short, tool string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <project-file>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: run(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			return a.Launch(cmd.Context(), args[0], tool)
		}),
	}
}

func newMetagenCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metagen <project-file>",
		Short: "Regenerate asset metadata for a project",
		Args:  cobra.ExactArgs(1),
		RunE: run(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			return a.Metagen(cmd.Context(), args[0])
		}),
	}
}
