// Package config provides configuration management for tfl.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter/pipeline"
)

// Config holds the tfl configuration.
type Config struct {
	Markup         string         `yaml:"markup" json:"markup"`
	PostProcess    []string       `yaml:"post_process,omitempty" json:"post_process,omitempty"`
	MacroNamespace string         `yaml:"macro_namespace,omitempty" json:"macro_namespace,omitempty"`
	FilterParams   map[string]any `yaml:"filter_params,omitempty" json:"filter_params,omitempty"`
	Sanitize       bool           `yaml:"sanitize,omitempty" json:"sanitize,omitempty"`
	CacheTTL       string         `yaml:"cache_ttl,omitempty" json:"cache_ttl,omitempty"`
	LogLevel       string         `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	LogFormat      string         `yaml:"log_format,omitempty" json:"log_format,omitempty"`
	OutputFormat   string         `yaml:"output_format,omitempty" json:"output_format,omitempty"`
}

// Allowed values for the enumerated settings.
var (
	LogLevels     = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	LogFormats    = []string{"text", "json"}
	OutputFormats = []string{"table", "json", "plain"}
)

var namespacePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Markup:    "markdown",
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Markup, validation.Required),
		validation.Field(&c.MacroNamespace, validation.Match(namespacePattern).Error("must start with a letter and contain only letters, digits, '-' or '_'")),
		validation.Field(&c.CacheTTL, validation.By(validDuration)),
		validation.Field(&c.LogLevel, validation.In(toAny(LogLevels)...)),
		validation.Field(&c.LogFormat, validation.In(toAny(LogFormats)...)),
		validation.Field(&c.OutputFormat, validation.In(toAny(OutputFormats)...)),
	)
}

func validDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return validation.NewError("validation_duration_invalid", "must be a duration such as 30s or 5m")
	}
	if d < 0 {
		return validation.NewError("validation_duration_negative", "must not be negative")
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// TTL returns the render cache lifetime; zero disables caching.
func (c *Config) TTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Params returns the filter parameters described by the configuration.
func (c *Config) Params() textfilter.Params {
	params := make(map[string]any, len(c.FilterParams))
	for k, v := range c.FilterParams {
		params[k] = v
	}
	return textfilter.Params{FilterParams: params, Namespace: c.MacroNamespace}
}

// Chain returns the default filter chain described by the configuration.
func (c *Config) Chain() pipeline.Chain {
	return pipeline.Chain{
		Markup:      c.Markup,
		PostProcess: append([]string(nil), c.PostProcess...),
		Sanitize:    c.Sanitize,
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if markup := os.Getenv("TFL_MARKUP"); markup != "" {
		c.Markup = markup
	}
	if post := os.Getenv("TFL_POST_PROCESS"); post != "" {
		c.PostProcess = SplitList(post)
	}
	if ns := os.Getenv("TFL_MACRO_NAMESPACE"); ns != "" {
		c.MacroNamespace = ns
	}
	if level := os.Getenv("TFL_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if format := os.Getenv("TFL_LOG_FORMAT"); format != "" {
		c.LogFormat = format
	}
}

// SplitList splits a comma separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "tfl", "config.yml")
	}

	// Fall back to ~/.config/tfl/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tfl", "config.yml")
	}

	return filepath.Join(home, ".config", "tfl", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path. Unset fields keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		// If file doesn't exist, start with defaults
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
