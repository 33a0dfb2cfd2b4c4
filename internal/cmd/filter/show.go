package filter

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/internal/cmd/completion"
	"github.com/open-cli-collective/textfilter-cli/internal/view"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

type showOptions struct {
	output  string
	noColor bool
	stdout  io.Writer
}

// NewCmdShow creates the filter show command.
func NewCmdShow() *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a filter's details",
		Long:  `Show a filter's type, description, default options, and help text.`,
		Example: `  # Show the code macro
  tfl filter show code`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completion.FilterNames(nil),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdout = cmd.OutOrStdout()
			return runShow(args[0], opts, nil)
		},
	}

	return cmd
}

func runShow(name string, opts *showOptions, reg *textfilter.Registry) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if reg == nil {
		reg = textfilter.Default
	}

	f, err := reg.Lookup(name)
	if err != nil {
		return err
	}
	info := describe(f, true)

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if opts.output == "json" {
		return renderer.RenderJSON(info)
	}

	renderer.RenderKeyValue("Name", info.Name)
	renderer.RenderKeyValue("Display Name", info.DisplayName)
	renderer.RenderKeyValue("Type", string(info.Type))
	renderer.RenderKeyValue("Identity", info.Identity)
	renderer.RenderKeyValue("Component", info.Component)
	if info.Description != "" {
		renderer.RenderKeyValue("Description", info.Description)
	}

	if len(info.DefaultConfig) > 0 {
		renderer.RenderText("")
		rows := make([][]string, 0, len(info.DefaultConfig))
		for _, key := range optionNames(info.DefaultConfig) {
			opt := info.DefaultConfig[key]
			rows = append(rows, []string{key, fmt.Sprint(opt.Default), opt.Description})
		}
		renderer.RenderTable([]string{"OPTION", "DEFAULT", "DESCRIPTION"}, rows)
	}

	if info.HelpText != "" {
		renderer.RenderText("")
		renderer.RenderText(info.HelpText)
	}

	return nil
}
