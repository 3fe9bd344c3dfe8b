package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UI.MobileBreakpoint != 100 || cfg.Output.Format != "json" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Data != "" {
		t.Fatalf("expected seed dataset by default, got %q", cfg.Data)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tipdesk.yaml")
	body := "data: /tmp/tips.db\nui:\n  mobile_breakpoint: 80\n  theme: dark\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TIPDESK_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Data != "/tmp/tips.db" || cfg.UI.MobileBreakpoint != 80 || cfg.UI.Theme != "dark" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("env should override file, got %q", cfg.Log.Level)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	cfg = Default()
	cfg.UI.Theme = "neon"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	cfg = Default()
	cfg.UI.Glyphs = "emoji"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidGlyphs) {
		t.Fatalf("expected ErrInvalidGlyphs, got %v", err)
	}
	cfg = Default()
	cfg.Log.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
}
