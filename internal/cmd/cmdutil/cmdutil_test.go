package cmdutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/textfilter-cli/internal/config"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

func TestConfigPath(t *testing.T) {
	cmd := &cobra.Command{Use: "tfl"}
	cmd.Flags().String("config", "", "")

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "tfl", "config.yml"), ConfigPath(cmd))

	require.NoError(t, cmd.Flags().Set("config", "/etc/tfl.yml"))
	assert.Equal(t, "/etc/tfl.yml", ConfigPath(cmd))
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("TFL_MARKUP", "")
	t.Setenv("TFL_LOG_LEVEL", "")

	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.yml"))
		require.NoError(t, err)
		assert.Equal(t, "markdown", cfg.Markup)
	})

	t.Run("invalid config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, (&config.Config{Markup: "markdown", LogLevel: "loud"}).Save(path))

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
		assert.Contains(t, err.Error(), "tfl init")
	})
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.md")
	require.NoError(t, os.WriteFile(path, []byte("# from file"), 0644))

	got, err := ReadInput(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "# from file", got)

	got, err = ReadInput("-", strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	got, err = ReadInput("", strings.NewReader("implicit stdin"))
	require.NoError(t, err)
	assert.Equal(t, "implicit stdin", got)

	_, err = ReadInput(filepath.Join(t.TempDir(), "missing.md"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestMergeParams(t *testing.T) {
	base := textfilter.Params{
		FilterParams: map[string]any{"a": "base", "b": "base"},
		Namespace:    "macro",
	}

	merged := MergeParams(base, "", map[string]any{"b": "front"}, map[string]any{"c": "flag"})
	assert.Equal(t, map[string]any{"a": "base", "b": "front", "c": "flag"}, merged.FilterParams)
	assert.Equal(t, "macro", merged.Namespace)
	assert.Equal(t, "base", base.FilterParams["b"])

	merged = MergeParams(base, "tf")
	assert.Equal(t, "tf", merged.Namespace)
}

func TestStringParams(t *testing.T) {
	assert.Nil(t, StringParams(nil))
	assert.Equal(t, map[string]any{"k": "v"}, StringParams(map[string]string{"k": "v"}))
}
