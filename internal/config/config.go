// Package config loads the toolbox-wide configuration shared by every
// bytesized utility.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bytesized/utilities/util"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileName is the config file name (without extension).
	FileName = "config"
	// FileType is the config file format.
	FileType = "toml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "BYTESIZED"
)

// Color modes accepted by the color setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrInvalidColorMode is returned when color is not auto, always or never.
var ErrInvalidColorMode = errors.New("invalid color mode")

type (
	Config struct {
		LogLevel string   `mapstructure:"log_level"`
		Color    string   `mapstructure:"color"`
		Hash     Hash     `mapstructure:"hash"`
		Markdown Markdown `mapstructure:"markdown"`
		Notify   Notify   `mapstructure:"notify"`
		Hexdump  Hexdump  `mapstructure:"hexdump"`
	}
	Hash struct {
		Algorithm string `mapstructure:"algorithm"`
	}
	Markdown struct {
		APIURL  string `mapstructure:"api_url"`
		Mode    string `mapstructure:"mode"`
		Context string `mapstructure:"context"`
		Token   string `mapstructure:"token"`
	}
	Notify struct {
		Title string `mapstructure:"title"`
	}
	Hexdump struct {
		Width int `mapstructure:"width"`
	}
)

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Color:    ColorAuto,
		Hash:     Hash{Algorithm: util.DefaultAlgorithm},
		Markdown: Markdown{
			APIURL: "https://api.github.com/markdown",
			Mode:   "gfm",
		},
		Notify: Notify{Title: "bytesized"},
	}
}

// Load reads configuration from path (or the default location when empty),
// the environment and any bound flags, in increasing order of precedence.
// A missing config file is not an error.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("hash.algorithm", defaults.Hash.Algorithm)
	v.SetDefault("markdown.api_url", defaults.Markdown.APIURL)
	v.SetDefault("markdown.mode", defaults.Markdown.Mode)
	v.SetDefault("markdown.context", defaults.Markdown.Context)
	v.SetDefault("notify.title", defaults.Notify.Title)
	v.SetDefault("hexdump.width", defaults.Hexdump.Width)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("markdown.token", EnvPrefix+"_MARKDOWN_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, err
	}

	if flags != nil {
		if f := flags.Lookup("log-level"); f != nil {
			if err := v.BindPFlag("log_level", f); err != nil {
				return nil, err
			}
		}
		if f := flags.Lookup("color"); f != nil {
			if err := v.BindPFlag("color", f); err != nil {
				return nil, err
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		paths, err := util.UserPaths()
		if err != nil {
			return nil, err
		}
		v.SetConfigFile(filepath.Join(paths.Config, FileName+"."+FileType))
	}
	v.SetConfigType(FileType)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be checked by their consumers alone.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %q (want auto, always or never)", ErrInvalidColorMode, c.Color)
	}
	if _, err := util.CanonicalAlgorithm(c.Hash.Algorithm); err != nil {
		return fmt.Errorf("hash.algorithm: %w", err)
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying cfg.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext returns the configuration stored in ctx, or the defaults.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(contextKey{}).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	cfg := Default()
	return &cfg
}
