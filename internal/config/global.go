// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	// globalMu guards the package-level cache and overrides.
	globalMu sync.Mutex

	// globalConfig caches the last successful Load() result.
	globalConfig *Config

	// configPath records where the cached config was loaded from ("" = defaults).
	configPath string

	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string

	// configFilePathOverride forces loading from a specific file (--config flag).
	configFilePathOverride string
)

// Load returns the global configuration, loading it on first use. Subsequent
// calls return the cached value until an override invalidates it.
func Load() (*Config, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	configPath = path

	return cfg, nil
}

// ConfigPath returns the path of the file the cached config was loaded from.
// It is empty when the config came from built-in defaults or Load() has not
// run yet.
func ConfigPath() string {
	globalMu.Lock()
	defer globalMu.Unlock()
	return configPath
}

// Reset clears test overrides and the cached config. Call from test cleanup
// to restore defaults.
func Reset() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = nil
	configPath = ""
	configDirOverride = ""
	configFilePathOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	configDirOverride = dir
	globalConfig = nil
	configPath = ""
}

// SetConfigFilePathOverride forces the next Load() to read the given file.
// Invalidates the cached config.
func SetConfigFilePathOverride(path string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	configFilePathOverride = path
	globalConfig = nil
	configPath = ""
}
