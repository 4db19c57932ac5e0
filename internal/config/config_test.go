package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if cfg.Hash.Algorithm != want.Hash.Algorithm || cfg.Markdown.APIURL != want.Markdown.APIURL {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
log_level = "info"
color = "never"

[hash]
algorithm = "sha512"

[markdown]
mode = "markdown"
context = "bytesized/utilities"

[hexdump]
width = 120
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("BYTESIZED_NOTIFY_TITLE", "from-env")
	t.Setenv("GITHUB_TOKEN", "gh-token")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "warn", "")
	if err := flags.Parse([]string{"--log-level", "debug"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"flag beats file", cfg.LogLevel, "debug"},
		{"file color", cfg.Color, ColorNever},
		{"file algorithm", cfg.Hash.Algorithm, "sha512"},
		{"file markdown mode", cfg.Markdown.Mode, "markdown"},
		{"file markdown context", cfg.Markdown.Context, "bytesized/utilities"},
		{"default api url", cfg.Markdown.APIURL, "https://api.github.com/markdown"},
		{"env title", cfg.Notify.Title, "from-env"},
		{"github token fallback", cfg.Markdown.Token, "gh-token"},
		{"file hexdump width", cfg.Hexdump.Width, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`color = "sometimes"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, nil); !errors.Is(err, ErrInvalidColorMode) {
		t.Errorf("Load() error = %v, want ErrInvalidColorMode", err)
	}
}

func TestFromContext(t *testing.T) {
	if got := FromContext(context.Background()); got.Hash.Algorithm != Default().Hash.Algorithm {
		t.Errorf("FromContext(empty) = %+v, want defaults", got)
	}

	cfg := Default()
	cfg.Notify.Title = "custom"
	ctx := WithContext(context.Background(), &cfg)
	if got := FromContext(ctx); got.Notify.Title != "custom" {
		t.Errorf("FromContext() title = %q, want custom", got.Notify.Title)
	}
}
