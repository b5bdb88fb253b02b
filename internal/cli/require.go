package cli

import (
	"github.com/spf13/cobra"

	"github.com/vk/plugrun/internal/app"
)

func newRequireCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "require <project-file>",
		Short: "Resolve plugin dependencies and write the extension manifest",
		Long: `require computes the complete, ordered list of plugins the project
needs: it expands the project's required plugin identifiers into their
full transitive closure against the registry, orders them so every
plugin appears after its dependencies (ties broken alphabetically),
drops pure libraries, and atomically rewrites the project's
extensions.txt.`,
		Args: cobra.ExactArgs(1),
		RunE: run(opts, func(cmd *cobra.Command, a *app.App, args []string) error {
			return a.Require(cmd.Context(), args[0])
		}),
	}
}
