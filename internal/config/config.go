// Package config loads snipconv configuration from file, environment and
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/opencode-ai/snipconv/internal/scope"
)

// EnvPrefix prefixes environment overrides, e.g. SNIPCONV_OUTPUT_SORT.
const EnvPrefix = "SNIPCONV"

// Config is the full snipconv configuration.
type Config struct {
	Output      OutputConfig      `mapstructure:"output" yaml:"output"`
	TemplateSet TemplateSetConfig `mapstructure:"template_set" yaml:"template_set"`
	Labels      map[string]string `mapstructure:"labels" yaml:"labels,omitempty"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	UI          UIConfig          `mapstructure:"ui" yaml:"ui"`
	Library     LibraryConfig     `mapstructure:"library" yaml:"library"`
}

// OutputConfig controls JSON snippet output.
type OutputConfig struct {
	IncludeBraces bool `mapstructure:"include_braces" yaml:"include_braces"`
	Sort          bool `mapstructure:"sort" yaml:"sort"`
}

// TemplateSetConfig controls live template XML output.
type TemplateSetConfig struct {
	IncludeWrapper bool   `mapstructure:"include_wrapper" yaml:"include_wrapper"`
	Group          string `mapstructure:"group" yaml:"group"`
	ContextCase    string `mapstructure:"context_case" yaml:"context_case"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// UIConfig controls the terminal UI.
type UIConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LibraryConfig controls where named sets are looked up.
type LibraryConfig struct {
	ProjectDir string `mapstructure:"project_dir" yaml:"project_dir"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			IncludeBraces: false,
			Sort:          false,
		},
		TemplateSet: TemplateSetConfig{
			IncludeWrapper: true,
			Group:          "Custom",
			ContextCase:    string(scope.CasePreserve),
		},
		Labels: map[string]string{},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		UI: UIConfig{
			Theme: "default",
		},
	}
}

// DefaultConfigDir returns the snipconv config directory, honoring
// XDG_CONFIG_HOME.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "snipconv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "snipconv")
}

// Load reads configuration. An explicit path must exist; otherwise the
// default config file is used when present. Environment variables override
// file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := DefaultConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Labels = upperKeys(cfg.Labels)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// upperKeys restores variable name case; viper folds map keys to lower case
// and variable names are conventionally upper case.
func upperKeys(labels map[string]string) map[string]string {
	out := make(map[string]string, len(labels))
	for name, label := range labels {
		out[strings.ToUpper(name)] = label
	}
	return out
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("output.include_braces", defaults.Output.IncludeBraces)
	v.SetDefault("output.sort", defaults.Output.Sort)
	v.SetDefault("template_set.include_wrapper", defaults.TemplateSet.IncludeWrapper)
	v.SetDefault("template_set.group", defaults.TemplateSet.Group)
	v.SetDefault("template_set.context_case", defaults.TemplateSet.ContextCase)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("ui.theme", defaults.UI.Theme)
	v.SetDefault("library.project_dir", defaults.Library.ProjectDir)
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := scope.ParseContextCase(c.TemplateSet.ContextCase); err != nil {
		return fmt.Errorf("template_set.context_case: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (want console or json)", c.Log.Format)
	}

	switch strings.ToLower(c.UI.Theme) {
	case "", "default", "high-contrast":
	default:
		return fmt.Errorf("ui.theme: unknown theme %q (want default or high-contrast)", c.UI.Theme)
	}

	for name := range c.Labels {
		if strings.TrimSpace(name) == "" {
			return errors.New("labels: variable name is required")
		}
	}

	return nil
}

// ContextCase returns the parsed context option case policy.
func (c *Config) ContextCase() scope.ContextCase {
	cc, err := scope.ParseContextCase(c.TemplateSet.ContextCase)
	if err != nil {
		return scope.CasePreserve
	}
	return cc
}
