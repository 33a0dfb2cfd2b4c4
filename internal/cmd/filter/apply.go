package filter

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/textfilter-cli/internal/cmd/completion"
	"github.com/open-cli-collective/textfilter-cli/internal/config"
	"github.com/open-cli-collective/textfilter-cli/internal/view"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

type applyOptions struct {
	params     map[string]string
	namespace  string
	noColor    bool
	configPath string
	stdin      io.Reader // For testing; defaults to os.Stdin
	stdout     io.Writer // For testing; defaults to os.Stdout
}

// NewCmdApply creates the filter apply command.
func NewCmdApply() *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <name> [file]",
		Short: "Apply a single filter",
		Long: `Run text through one filter only, without the rest of the chain.

Input is read from the file argument, or from stdin when it is omitted or "-".`,
		Example: `  # Expand only the macropost stage
  tfl filter apply macropost page.html

  # Convert markdown without running any macros
  echo '# Hi' | tfl filter apply markdown`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completion.FilterNames(nil),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.configPath = cmdutil.ConfigPath(cmd)
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			var path string
			if len(args) > 1 {
				path = args[1]
			}
			return runApply(args[0], path, opts, nil, nil)
		},
	}

	cmd.Flags().StringToStringVar(&opts.params, "param", nil, "Filter option as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Macro tag namespace (default \"macro\")")

	return cmd
}

func runApply(name, path string, opts *applyOptions, cfg *config.Config, reg *textfilter.Registry) error {
	if reg == nil {
		reg = textfilter.Default
	}

	f, err := reg.Lookup(name)
	if err != nil {
		return err
	}

	if cfg == nil {
		cfg, err = cmdutil.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
	}

	input, err := cmdutil.ReadInput(path, opts.stdin)
	if err != nil {
		return err
	}

	params := cmdutil.MergeParams(cfg.Params(), opts.namespace, cmdutil.StringParams(opts.params))
	out, err := f.Filtertext(params, input)
	if err != nil {
		return fmt.Errorf("failed to apply %s: %w", name, err)
	}

	renderer := view.NewRenderer(view.FormatPlain, opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	renderer.RenderDocument(out)
	return nil
}
