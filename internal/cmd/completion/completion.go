// Package completion provides shell completion generation commands.
package completion

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

type shell struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name: "bash",
		install: `  # Load in current session
  source <(tfl completion bash)

  # Install permanently (Linux)
  tfl completion bash | sudo tee /etc/bash_completion.d/tfl > /dev/null

  # Install permanently (macOS with Homebrew)
  tfl completion bash > $(brew --prefix)/etc/bash_completion.d/tfl`,
		gen: func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletion(w) },
	},
	{
		name: "zsh",
		install: `  # Load in current session
  source <(tfl completion zsh)

  # Install permanently
  mkdir -p ~/.zsh/completions
  tfl completion zsh > ~/.zsh/completions/_tfl

  # Then add to ~/.zshrc:
  # fpath=(~/.zsh/completions $fpath)
  # autoload -Uz compinit && compinit`,
		gen: func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	},
	{
		name: "fish",
		install: `  # Load in current session
  tfl completion fish | source

  # Install permanently
  tfl completion fish > ~/.config/fish/completions/tfl.fish`,
		gen: func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	},
	{
		name: "powershell",
		install: `  # Load in current session
  tfl completion powershell | Out-String | Invoke-Expression

  # Install permanently (add to $PROFILE)
  tfl completion powershell >> $PROFILE`,
		gen: func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tfl.

These scripts enable tab-completion for commands, flags, and filter names.
See each sub-command's help for installation instructions.`,
	}

	for _, sh := range shells {
		cmd.AddCommand(newCmdShell(sh))
	}

	return cmd
}

func newCmdShell(sh shell) *cobra.Command {
	return &cobra.Command{
		Use:                   sh.name,
		Short:                 "Generate " + sh.name + " completion script",
		Long:                  "Generate " + sh.name + " completion script for tfl.",
		Example:               sh.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return sh.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// FilterNames completes registered filter short names, restricted to the
// given types when any are passed.
func FilterNames(reg *textfilter.Registry, types ...textfilter.Type) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if reg == nil {
			reg = textfilter.Default
		}

		var names []string
		for _, f := range reg.All() {
			if len(types) > 0 && !hasType(types, textfilter.TypeOf(f)) {
				continue
			}
			name, err := textfilter.ShortName(f)
			if err != nil || !strings.HasPrefix(name, toComplete) {
				continue
			}
			names = append(names, name+"\t"+f.Descriptor().Description)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}

func hasType(types []textfilter.Type, t textfilter.Type) bool {
	for _, want := range types {
		if want == t {
			return true
		}
	}
	return false
}
