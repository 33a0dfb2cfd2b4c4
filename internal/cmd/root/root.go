// Package root provides the root command for the tfl CLI.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/textfilter-cli/internal/cmd/completion"
	"github.com/open-cli-collective/textfilter-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/textfilter-cli/internal/cmd/filter"
	"github.com/open-cli-collective/textfilter-cli/internal/cmd/importcmd"
	initcmd "github.com/open-cli-collective/textfilter-cli/internal/cmd/init"
	"github.com/open-cli-collective/textfilter-cli/internal/cmd/render"
	"github.com/open-cli-collective/textfilter-cli/internal/config"
	"github.com/open-cli-collective/textfilter-cli/internal/logging"
	"github.com/open-cli-collective/textfilter-cli/internal/version"

	// Registers the built-in filters.
	_ "github.com/open-cli-collective/textfilter-cli/pkg/textfilter/filters"
)

// NewCmdRoot creates the root command for tfl.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tfl",
		Short: "A pluggable text-filter pipeline",
		Long: `tfl renders text through a chain of pluggable filters.

Text first passes the macropre stage, then a markup filter such as markdown,
then the macropost stage, then any post-process filters. Macros are tags
like <macro:code lang="go">...</macro:code> expanded by registered filters.

Get started by running: tfl init`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version.Version,
		PersistentPreRunE: setup,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/tfl/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(render.NewCmdRender())
	cmd.AddCommand(filter.NewCmdFilter())
	cmd.AddCommand(importcmd.NewCmdImport())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

// setup configures logging and the output format from the config file
// before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithEnv(cmdutil.ConfigPath(cmd))
	if err != nil {
		cfg = config.Default()
	}

	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logrus.DebugLevel.String()
	}
	if _, err := logging.Setup(level, cfg.LogFormat, cmd.ErrOrStderr()); err != nil {
		return err
	}

	if out := cmd.Flags().Lookup("output"); out != nil && !out.Changed && cfg.OutputFormat != "" {
		_ = out.Value.Set(cfg.OutputFormat)
	}
	return nil
}
