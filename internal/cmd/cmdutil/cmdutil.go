// Package cmdutil holds helpers shared by tfl commands.
package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/internal/config"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

// ConfigPath returns the --config flag value, or the default path when unset.
func ConfigPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

// LoadConfig loads configuration from path with env overrides and validates it.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w (run 'tfl init' to configure)", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'tfl init' to configure)", err)
	}

	return cfg, nil
}

// ReadInput reads the named file, or stdin when path is empty or "-".
func ReadInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// MergeParams layers per-call params over base. Later maps win; an empty
// namespace keeps the base namespace.
func MergeParams(base textfilter.Params, namespace string, overrides ...map[string]any) textfilter.Params {
	merged := make(map[string]any, len(base.FilterParams))
	for k, v := range base.FilterParams {
		merged[k] = v
	}
	for _, o := range overrides {
		for k, v := range o {
			merged[k] = v
		}
	}

	out := textfilter.Params{FilterParams: merged, Namespace: base.Namespace}
	if namespace != "" {
		out.Namespace = namespace
	}
	return out
}

// StringParams converts --param key=value flags into filter params.
func StringParams(flags map[string]string) map[string]any {
	if len(flags) == 0 {
		return nil
	}
	out := make(map[string]any, len(flags))
	for k, v := range flags {
		out[k] = v
	}
	return out
}
