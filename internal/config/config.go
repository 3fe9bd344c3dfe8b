// Package config loads tipdesk settings from an optional YAML file, TIPDESK_*
// environment variables and built-in defaults, in that order of precedence
// (flags are applied on top by the CLI).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "TIPDESK"

type Config struct {
	// Data is the dataset path; empty means the built-in seed.
	Data   string       `mapstructure:"data"`
	Log    LogConfig    `mapstructure:"log"`
	UI     UIConfig     `mapstructure:"ui"`
	Output OutputConfig `mapstructure:"output"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"` // debug, info, warn, error
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

type UIConfig struct {
	// MobileBreakpoint is the terminal width below which one pane is shown at a time.
	MobileBreakpoint int    `mapstructure:"mobile_breakpoint"`
	MarkdownStyle    string `mapstructure:"markdown_style"` // auto, dark, light, notty
	Theme            string `mapstructure:"theme"`          // auto, dark, light
	Glyphs           string `mapstructure:"glyphs"`         // unicode, ascii
}

type OutputConfig struct {
	Format string `mapstructure:"format"` // json, edn, yaml
	Pretty bool   `mapstructure:"pretty"`
}

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidTheme  = errors.New("invalid theme")
	ErrInvalidFormat = errors.New("invalid output format")
	ErrInvalidGlyphs = errors.New("invalid glyph set")
)

// DefaultConfigDir returns $XDG_CONFIG_HOME/tipdesk (or the platform equivalent).
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".config", "tipdesk")
	}
	return filepath.Join(dir, "tipdesk")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(DefaultConfigDir(), "logs", "tipdesk.log"))
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 14)
	v.SetDefault("ui.mobile_breakpoint", 100)
	v.SetDefault("ui.markdown_style", "auto")
	v.SetDefault("ui.theme", "auto")
	v.SetDefault("ui.glyphs", "unicode")
	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", false)
}

// Load reads path if given, otherwise config.yaml from DefaultConfigDir when it
// exists. A missing default file is not an error; a missing explicit one is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultConfigDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is set anywhere.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "disabled":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Log.Level)
	}
	switch strings.ToLower(c.UI.Theme) {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTheme, c.UI.Theme)
	}
	switch strings.ToLower(c.UI.Glyphs) {
	case "unicode", "ascii":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidGlyphs, c.UI.Glyphs)
	}
	switch strings.ToLower(c.Output.Format) {
	case "json", "edn", "yaml":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}
	if c.UI.MobileBreakpoint < 0 {
		return fmt.Errorf("ui.mobile_breakpoint must be non-negative")
	}
	return nil
}
