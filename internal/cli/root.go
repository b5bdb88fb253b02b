package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vk/plugrun/internal/app"
	"github.com/vk/plugrun/internal/ctxlog"
)

// rootOptions carries state shared by all subcommands: the resolved
// configuration and the lazily constructed App.
type rootOptions struct {
	cfgFile string
	v       *viper.Viper

	config *app.Config
	app    *app.App
}

// App returns the shared App instance, constructing it on first use so
// that help and version output never touch the registry.
func (o *rootOptions) App(cmd *cobra.Command) (*app.App, error) {
	if o.app != nil {
		return o.app, nil
	}
	a, err := app.NewApp(cmd.ErrOrStderr(), o.config)
	if err != nil {
		return nil, err
	}
	o.app = a
	return a, nil
}

// NewRootCommand builds the plugrun command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "plugrun",
		Short: "Project plugin dependency resolver and launcher",
		Long: `plugrun manages a project's plugin dependencies for the engine: it
resolves the transitive closure of required plugins against the local
plugin registry, orders them so every plugin loads after its
dependencies, and writes the resulting extension manifest next to the
project file. It also launches engine tools for a given project.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(opts, cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config-file", "", "tool config file (default: ~/.plugrun/config.yaml)")
	pf.String("registry", "", "path to the plugin registry file (default: ~/.plugrun/registry.hcl)")
	pf.String("platform", "win_x64", "target platform (win_x86, win_x64, linux_x64)")
	pf.String("config", "RelWithDebInfo", "build configuration (Debug, Release, RelWithDebInfo, MinSizeRel)")
	pf.String("log-level", "info", "logging level (debug, info, warn, error)")
	pf.String("log-format", "text", "log output format (text, json)")

	cmd.AddCommand(
		newRequireCommand(opts),
		newLaunchCommand(opts, "open", "Launch the game for a project", app.ToolLauncher),
		newLaunchCommand(opts, "server", "Launch the dedicated server for a project", app.ToolServer),
		newLaunchCommand(opts, "edit", "Open a project in the editor", app.ToolEditor),
		newMetagenCommand(opts),
	)

	return cmd
}

// initConfig layers flag, environment, and config-file values into a
// validated app.Config. Precedence: flags, then PLUGRUN_* environment
// variables, then the config file, then defaults.
func initConfig(opts *rootOptions, cmd *cobra.Command) error {
	v := opts.v

	pf := cmd.Root().PersistentFlags()
	for flagName, key := range map[string]string{
		"registry":   "registry",
		"platform":   "platform",
		"config":     "build_config",
		"log-level":  "log_level",
		"log-format": "log_format",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flagName)); err != nil {
			return err
		}
	}

	v.SetEnvPrefix("PLUGRUN")
	v.AutomaticEnv()

	if opts.cfgFile != "" {
		v.SetConfigFile(opts.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".plugrun"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg, err := app.NewConfig(app.Config{
		RegistryPath: v.GetString("registry"),
		Platform:     v.GetString("platform"),
		BuildConfig:  v.GetString("build_config"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
	})
	if err != nil {
		return err
	}
	opts.config = cfg
	return nil
}

// run wraps a command body with app construction and logger propagation.
func run(opts *rootOptions, body func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := opts.App(cmd)
		if err != nil {
			return err
		}
		cmd.SetContext(ctxlog.WithLogger(cmd.Context(), a.Logger()))
		return body(cmd, a, args)
	}
}
