package filter

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/internal/view"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

type listOptions struct {
	typ     string
	macros  bool
	output  string
	noColor bool
	stdout  io.Writer
}

// NewCmdList creates the filter list command.
func NewCmdList() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List registered filters",
		Long:    `List registered text filters in registration order, optionally restricted to one stage.`,
		Example: `  # List all filters
  tfl filter list

  # List markup filters
  tfl filter list --type markup

  # List macro filters of both stages as JSON
  tfl filter list --macros -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runList(opts, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.typ, "type", "t", "", "Filter type: macropre, macropost, markup, postprocess, other")
	cmd.Flags().BoolVar(&opts.macros, "macros", false, "Only macro filters (macropre and macropost)")

	return cmd
}

func runList(opts *listOptions, reg *textfilter.Registry) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if reg == nil {
		reg = textfilter.Default
	}

	var list []textfilter.Filter
	switch {
	case opts.macros && opts.typ != "":
		return fmt.Errorf("--type and --macros cannot be used together")
	case opts.macros:
		list = reg.MacroFilters()
	case opts.typ != "":
		t, ok := textfilter.ParseType(opts.typ)
		if !ok {
			return fmt.Errorf("%w: %q", textfilter.ErrWrongFilterType, opts.typ)
		}
		list = reg.ByType(t)
	default:
		list = reg.All()
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if opts.output == "json" {
		infos := make([]filterInfo, 0, len(list))
		for _, f := range list {
			infos = append(infos, describe(f, false))
		}
		return renderer.RenderJSON(infos)
	}

	if len(list) == 0 {
		renderer.RenderText("No filters found.")
		return nil
	}

	headers := []string{"NAME", "TYPE", "DISPLAY NAME", "DESCRIPTION"}
	rows := make([][]string, 0, len(list))
	for _, f := range list {
		info := describe(f, false)
		rows = append(rows, []string{
			info.Name,
			string(info.Type),
			info.DisplayName,
			view.Truncate(info.Description, 50),
		})
	}

	renderer.RenderTable(headers, rows)
	return nil
}
