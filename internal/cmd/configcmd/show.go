package configcmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/textfilter-cli/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective tfl configuration and where each value comes from.`,
		Example: `  # Show current config
  tfl config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmdutil.ConfigPath(cmd), noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runShow(configPath string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	_, fileErr := config.Load(configPath)

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value string) {
		_, _ = bold.Fprintf(w, "%-14s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}
		fmt.Fprint(w, value)

		source := "config"
		if fileErr != nil {
			source = "default"
		}
		if envVar, ok := envSources[label]; ok && os.Getenv(envVar) != "" {
			source = envVar
		}
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Markup", cfg.Markup)
	printField("Post-process", strings.Join(cfg.PostProcess, ", "))
	printField("Namespace", cfg.MacroNamespace)
	printField("Sanitize", fmt.Sprint(cfg.Sanitize))
	printField("Cache TTL", cfg.CacheTTL)
	printField("Log level", cfg.LogLevel)
	printField("Log format", cfg.LogFormat)
	printField("Output", cfg.OutputFormat)

	if len(cfg.FilterParams) > 0 {
		fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "Filter params:")
		keys := make([]string, 0, len(cfg.FilterParams))
		for k := range cfg.FilterParams {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s = %v\n", k, cfg.FilterParams[k])
		}
	}

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}
