// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"
)

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tfl configuration",
		Long:  `Commands for viewing, checking, and clearing tfl configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdCheck())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// envSources maps settings to the environment variables that override them.
var envSources = map[string]string{
	"Markup":       "TFL_MARKUP",
	"Post-process": "TFL_POST_PROCESS",
	"Namespace":    "TFL_MACRO_NAMESPACE",
	"Log level":    "TFL_LOG_LEVEL",
	"Log format":   "TFL_LOG_FORMAT",
}
