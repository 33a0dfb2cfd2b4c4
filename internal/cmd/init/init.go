// Package init provides the init command for tfl.
package init

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/textfilter-cli/internal/cmd/completion"
	"github.com/open-cli-collective/textfilter-cli/internal/config"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter/pipeline"
)

type initOptions struct {
	markup     string
	post       []string
	namespace  string
	noPrompt   bool
	force      bool
	configPath string
	stdout     io.Writer // For testing; defaults to os.Stdout
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize tfl configuration",
		Long: `Initialize tfl with your default filter chain.

This command will guide you through choosing the markup filter, the
post-process filters and the macro namespace. The configuration will be
saved to ~/.config/tfl/config.yml.`,
		Example: `  # Interactive setup
  tfl init

  # Non-interactive setup
  tfl init --no-prompt --markup markdown --post smartypants`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath = cmdutil.ConfigPath(cmd)
			opts.stdout = cmd.OutOrStdout()
			return runInit(opts, nil)
		},
	}

	cmd.Flags().StringVar(&opts.markup, "markup", "", "Default markup filter")
	cmd.Flags().StringSliceVar(&opts.post, "post", nil, "Default post-process filters")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Macro tag namespace")
	cmd.Flags().BoolVar(&opts.noPrompt, "no-prompt", false, "Write the configuration from flags without prompting")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration")

	_ = cmd.RegisterFlagCompletionFunc("markup", completion.FilterNames(nil, textfilter.TypeMarkup))
	_ = cmd.RegisterFlagCompletionFunc("post", completion.FilterNames(nil, textfilter.TypePostProcess))

	return cmd
}

func runInit(opts *initOptions, reg *textfilter.Registry) error {
	if reg == nil {
		reg = textfilter.Default
	}
	w := opts.stdout
	if w == nil {
		w = os.Stdout
	}

	// Check if config already exists
	if _, err := os.Stat(opts.configPath); err == nil && !opts.force {
		if opts.noPrompt {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", opts.configPath)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", opts.configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(w, "Initialization cancelled.")
			return nil
		}
	}

	cfg := config.Default()

	// Use prefilled values or prompt
	if opts.markup != "" {
		cfg.Markup = opts.markup
	}
	if len(opts.post) > 0 {
		cfg.PostProcess = opts.post
	}
	if opts.namespace != "" {
		cfg.MacroNamespace = opts.namespace
	}

	if !opts.noPrompt {
		if err := buildForm(cfg, reg).Run(); err != nil {
			return err
		}
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := verifyChain(cfg, reg); err != nil {
		return fmt.Errorf("filter chain verification failed: %w", err)
	}

	// Save configuration
	if err := cfg.Save(opts.configPath); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nConfiguration saved to %s\n", opts.configPath)
	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  tfl filter list")
	fmt.Fprintln(w, "  tfl render post.md")

	return nil
}

func buildForm(cfg *config.Config, reg *textfilter.Registry) *huh.Form {
	logLevels := make([]huh.Option[string], 0, len(config.LogLevels))
	for _, l := range config.LogLevels {
		logLevels = append(logLevels, huh.NewOption(l, l))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Markup").
				Description("Filter that turns your text into HTML").
				Options(filterOptions(reg, textfilter.TypeMarkup)...).
				Value(&cfg.Markup),

			huh.NewMultiSelect[string]().
				Title("Post-process filters").
				Description("Run on the HTML after macros are expanded").
				Options(filterOptions(reg, textfilter.TypePostProcess)...).
				Value(&cfg.PostProcess),

			huh.NewInput().
				Title("Macro namespace (optional)").
				Description("Tags look like <namespace:name/>").
				Placeholder(textfilter.DefaultNamespace).
				Value(&cfg.MacroNamespace),

			huh.NewSelect[string]().
				Title("Log level").
				Options(logLevels...).
				Value(&cfg.LogLevel),
		),
	)
}

// filterOptions lists the filters of one type as form options.
func filterOptions(reg *textfilter.Registry, t textfilter.Type) []huh.Option[string] {
	var opts []huh.Option[string]
	for _, f := range reg.ByType(t) {
		name, err := textfilter.ShortName(f)
		if err != nil {
			continue
		}
		label := name
		if desc := f.Descriptor().Description; desc != "" {
			label = name + " - " + desc
		}
		opts = append(opts, huh.NewOption(label, name))
	}
	return opts
}

// verifyChain checks that every filter the configuration names is registered
// with the right type.
func verifyChain(cfg *config.Config, reg *textfilter.Registry) error {
	_, err := pipeline.New(reg).Steps(cfg.Chain())
	return err
}
