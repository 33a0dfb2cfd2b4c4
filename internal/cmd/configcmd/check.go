package configcmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/textfilter-cli/internal/config"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter/pipeline"
)

const sampleText = "Hello *world*"

// NewCmdCheck creates the config check command.
func NewCmdCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check",
		Aliases: []string{"test"},
		Short:   "Check that the configured filter chain works",
		Long: `Validate the configuration, resolve every filter it names, and render a
short sample through the configured chain.`,
		Example: `  # Check the configuration
  tfl config check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runCheck(cmd.Context(), cmdutil.ConfigPath(cmd), noColor, cmd.OutOrStdout(), nil)
		},
	}

	return cmd
}

func runCheck(ctx context.Context, configPath string, noColor bool, w io.Writer, reg *textfilter.Registry, cfgs ...*config.Config) error {
	if noColor {
		color.NoColor = true
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var cfg *config.Config
	if len(cfgs) > 0 && cfgs[0] != nil {
		cfg = cfgs[0]
	} else {
		var err error
		cfg, err = cmdutil.LoadConfig(configPath)
		if err != nil {
			return err
		}
	}

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	p := pipeline.New(reg)
	steps, err := p.Steps(cfg.Chain())
	if err != nil {
		_, _ = red.Fprintln(w, "✗ Filter chain is invalid:", err)
		fmt.Fprintln(w, "\nList available filters with: tfl filter list")
		return fmt.Errorf("invalid filter chain: %w", err)
	}

	for _, step := range steps {
		_, _ = green.Fprintf(w, "✓ %s (%s)\n", step.Name, textfilter.TypeOf(step.Filter))
	}

	if _, err := p.Render(ctx, cfg.Chain(), cfg.Params(), sampleText); err != nil {
		_, _ = red.Fprintln(w, "✗ Sample render failed:", err)
		return fmt.Errorf("sample render failed: %w", err)
	}

	_, _ = green.Fprintln(w, "✓ Sample rendered successfully")
	return nil
}
