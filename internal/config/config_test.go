// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// Tests in this file mutate package-level overrides and must not run in
// parallel with each other.

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Cleanup(Reset)
	SetConfigDirOverride(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Command != DefaultCommand {
		t.Errorf("Command = %q, want %q", cfg.Command, DefaultCommand)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}
	if ConfigPath() != "" {
		t.Errorf("ConfigPath() = %q, want empty for defaults", ConfigPath())
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	path := writeConfigFile(t, dir, `
command = "vagrant --no-color"
working_dir = "/srv/vms"
timeout = "2m"

[ui]
color_scheme = "dark"
verbose = true
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Command != "vagrant --no-color" {
		t.Errorf("Command = %q", cfg.Command)
	}
	if cfg.WorkingDir != "/srv/vms" {
		t.Errorf("WorkingDir = %q", cfg.WorkingDir)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m", cfg.Timeout)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %q", cfg.UI.ColorScheme)
	}
	if !cfg.UI.Verbose {
		t.Error("Verbose = false, want true")
	}
	if ConfigPath() != path {
		t.Errorf("ConfigPath() = %q, want %q", ConfigPath(), path)
	}
}

func TestLoad_Caches(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	writeConfigFile(t, dir, `command = "vagrant --no-color"`)

	first, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// A change on disk must not be visible until the cache is invalidated.
	writeConfigFile(t, dir, `command = "vagrant --color"`)

	second, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first != second {
		t.Error("expected the cached *Config instance")
	}

	SetConfigDirOverride(dir)
	third, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if third.Command != "vagrant --color" {
		t.Errorf("after invalidation Command = %q, want the on-disk value", third.Command)
	}
}

func TestLoad_ConfigFilePathOverride(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	custom := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(custom, []byte(`command = "vagrant --machine-readable"`), 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	SetConfigFilePathOverride(custom)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Command != "vagrant --machine-readable" {
		t.Errorf("Command = %q", cfg.Command)
	}
	if ConfigPath() != custom {
		t.Errorf("ConfigPath() = %q, want %q", ConfigPath(), custom)
	}
}

func TestLoad_MissingOverrideFile(t *testing.T) {
	t.Cleanup(Reset)
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.toml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a missing --config file")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	writeConfigFile(t, dir, `
command = ""

[ui]
color_scheme = "neon"
`)

	_, err := Load()
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("expected ErrInvalidCommand in chain, got %v", err)
	}
	if !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("expected ErrInvalidColorScheme in chain, got %v", err)
	}
}

func TestProvider_Load(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	writeConfigFile(t, dir, `command = "vagrant --no-color"`)

	provider := NewProvider()
	cfg, err := provider.Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Command != "vagrant --no-color" {
		t.Errorf("Command = %q", cfg.Command)
	}
}

func TestProvider_LoadResolved(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	path := writeConfigFile(t, dir, `command = "vagrant --no-color"`)

	provider := NewProvider()
	cfg, resolved, err := provider.LoadResolved(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("LoadResolved() error = %v", err)
	}
	if cfg.Command != "vagrant --no-color" {
		t.Errorf("Command = %q", cfg.Command)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}

	// No file in the directory means defaults with an empty path.
	_, resolved, err = provider.LoadResolved(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("LoadResolved() error = %v", err)
	}
	if resolved != "" {
		t.Errorf("resolved path = %q, want empty for defaults", resolved)
	}
}

func TestProvider_LoadCanceled(t *testing.T) {
	t.Cleanup(Reset)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := NewProvider()
	if _, err := provider.Load(ctx, LoadOptions{ConfigDirPath: t.TempDir()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	SetConfigDirOverride(dir)

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read generated config: %v", err)
	}
	if !strings.Contains(string(data), `command = 'vagrant'`) &&
		!strings.Contains(string(data), `command = "vagrant"`) {
		t.Errorf("generated config missing command default:\n%s", data)
	}

	// A second call must not clobber an existing file.
	if err := os.WriteFile(path, []byte("command = 'custom'\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() second call error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if !strings.Contains(string(data), "custom") {
		t.Error("CreateDefaultConfig() overwrote an existing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	SetConfigDirOverride(dir)

	want := DefaultConfig()
	want.Command = "vagrant --no-color"
	want.WorkingDir = "/srv/vms"
	want.Timeout = 90 * time.Second
	want.UI.ColorScheme = ColorSchemeLight
	want.UI.Verbose = true

	if err := Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	SetConfigDirOverride(dir) // invalidate cache
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save() error = %v", err)
	}
	if got.Command != want.Command ||
		got.WorkingDir != want.WorkingDir ||
		got.Timeout != want.Timeout ||
		got.UI.ColorScheme != want.UI.ColorScheme ||
		got.UI.Verbose != want.UI.Verbose {
		t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	t.Cleanup(Reset)
	dir := filepath.Join(t.TempDir(), "nested", "vagabond")
	SetConfigDirOverride(dir)

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("config dir not created: %v", err)
	}
}
