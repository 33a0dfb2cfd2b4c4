// Package filter provides commands for inspecting and applying text filters.
package filter

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

// NewCmdFilter creates the filter command.
func NewCmdFilter() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "filter",
		Aliases: []string{"filters"},
		Short:   "Inspect and apply text filters",
		Long:    `Commands for listing registered text filters, showing their options, and applying one filter on its own.`,
	}

	cmd.AddCommand(NewCmdList())
	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdApply())

	return cmd
}

// filterInfo is the JSON shape of a registered filter.
type filterInfo struct {
	Name          string            `json:"name"`
	Identity      string            `json:"identity"`
	Component     string            `json:"component"`
	Type          textfilter.Type   `json:"type"`
	DisplayName   string            `json:"display_name,omitempty"`
	Description   string            `json:"description,omitempty"`
	DefaultConfig textfilter.Config `json:"default_config,omitempty"`
	HelpText      string            `json:"help_text,omitempty"`
}

func describe(f textfilter.Filter, withHelp bool) filterInfo {
	d := f.Descriptor()
	name, _ := textfilter.ShortName(f)
	component, _ := textfilter.ComponentName(f)
	info := filterInfo{
		Name:          name,
		Identity:      d.Identity,
		Component:     component,
		Type:          textfilter.TypeOf(f),
		DisplayName:   d.DisplayName,
		Description:   d.Description,
		DefaultConfig: d.DefaultConfig,
	}
	if withHelp {
		info.HelpText = d.HelpText
	}
	return info
}

// optionNames returns the default config keys in a stable order.
func optionNames(cfg textfilter.Config) []string {
	names := make([]string, 0, len(cfg))
	for k := range cfg {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
