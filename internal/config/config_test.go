package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  Config{Markup: "markdown", LogLevel: "debug", LogFormat: "json", OutputFormat: "plain", CacheTTL: "5m"},
			wantErr: false,
		},
		{
			name:    "defaults are valid",
			config:  *Default(),
			wantErr: false,
		},
		{
			name:    "missing markup",
			config:  Config{},
			wantErr: true,
			errMsg:  "markup: cannot be blank",
		},
		{
			name:    "unknown log level",
			config:  Config{Markup: "markdown", LogLevel: "loud"},
			wantErr: true,
			errMsg:  "log_level",
		},
		{
			name:    "unknown log format",
			config:  Config{Markup: "markdown", LogFormat: "xml"},
			wantErr: true,
			errMsg:  "log_format",
		},
		{
			name:    "unknown output format",
			config:  Config{Markup: "markdown", OutputFormat: "csv"},
			wantErr: true,
			errMsg:  "output_format",
		},
		{
			name:    "bad namespace",
			config:  Config{Markup: "markdown", MacroNamespace: "9lives"},
			wantErr: true,
			errMsg:  "macro_namespace",
		},
		{
			name:    "bad cache ttl",
			config:  Config{Markup: "markdown", CacheTTL: "soon"},
			wantErr: true,
			errMsg:  "cache_ttl",
		},
		{
			name:    "negative cache ttl",
			config:  Config{Markup: "markdown", CacheTTL: "-1s"},
			wantErr: true,
			errMsg:  "cache_ttl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_TTL(t *testing.T) {
	assert.Equal(t, 5*time.Minute, (&Config{CacheTTL: "5m"}).TTL())
	assert.Equal(t, time.Duration(0), (&Config{}).TTL())
	assert.Equal(t, time.Duration(0), (&Config{CacheTTL: "bogus"}).TTL())
}

func TestConfig_ParamsAndChain(t *testing.T) {
	cfg := &Config{
		Markup:         "markdown",
		PostProcess:    []string{"smartypants"},
		MacroNamespace: "tf",
		FilterParams:   map[string]any{"code-style": "github"},
		Sanitize:       true,
	}

	params := cfg.Params()
	assert.Equal(t, "tf", params.Namespace)
	assert.Equal(t, "github", params.FilterParams["code-style"])

	params.FilterParams["code-style"] = "changed"
	assert.Equal(t, "github", cfg.FilterParams["code-style"])

	chain := cfg.Chain()
	assert.Equal(t, "markdown", chain.Markup)
	assert.Equal(t, []string{"smartypants"}, chain.PostProcess)
	assert.True(t, chain.Sanitize)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv("TFL_MARKUP", "none")
		t.Setenv("TFL_POST_PROCESS", "smartypants, twitterfilter,")
		t.Setenv("TFL_MACRO_NAMESPACE", "tf")
		t.Setenv("TFL_LOG_LEVEL", "debug")
		t.Setenv("TFL_LOG_FORMAT", "json")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "none", cfg.Markup)
		assert.Equal(t, []string{"smartypants", "twitterfilter"}, cfg.PostProcess)
		assert.Equal(t, "tf", cfg.MacroNamespace)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("empty env vars do not override", func(t *testing.T) {
		t.Setenv("TFL_MARKUP", "")
		t.Setenv("TFL_POST_PROCESS", "")
		t.Setenv("TFL_MACRO_NAMESPACE", "")
		t.Setenv("TFL_LOG_LEVEL", "")
		t.Setenv("TFL_LOG_FORMAT", "")

		cfg := &Config{Markup: "markdown", PostProcess: []string{"smartypants"}}
		cfg.LoadFromEnv()

		assert.Equal(t, "markdown", cfg.Markup)
		assert.Equal(t, []string{"smartypants"}, cfg.PostProcess)
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,, b "))
	assert.Nil(t, SplitList(" , "))
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		assert.Equal(t, filepath.Join("/tmp/xdg", "tfl", "config.yml"), DefaultConfigPath())
	})

	t.Run("home directory", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		path := DefaultConfigPath()

		home, err := os.UserHomeDir()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(path, home))
		assert.Contains(t, path, "tfl")
		assert.Equal(t, ".yml", filepath.Ext(path))
	})
}

func TestConfig_Save_and_Load(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yml")

	original := Config{
		Markup:         "markdown",
		PostProcess:    []string{"smartypants", "twitterfilter"},
		MacroNamespace: "tf",
		FilterParams:   map[string]any{"lightbox-rel": "gallery"},
		Sanitize:       true,
		CacheTTL:       "10m",
		LogLevel:       "debug",
		LogFormat:      "json",
		OutputFormat:   "json",
	}

	err := original.Save(configPath)
	require.NoError(t, err)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoad_KeepsDefaultsForMissingFields(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("post_process: [smartypants]\n"), 0600))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Markup)
	assert.Equal(t, []string{"smartypants"}, cfg.PostProcess)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("markup: [unclosed\n"), 0600))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv(t *testing.T) {
	t.Run("missing file uses defaults and env", func(t *testing.T) {
		t.Setenv("TFL_MARKUP", "none")

		cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
		require.NoError(t, err)
		assert.Equal(t, "none", cfg.Markup)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("invalid file is reported", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configPath, []byte(":\n\t- nope"), 0600))

		_, err := LoadWithEnv(configPath)
		require.Error(t, err)
	})
}
