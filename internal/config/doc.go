// SPDX-License-Identifier: MPL-2.0

// Package config loads and persists vagabond configuration: the vagrant
// command to run, the working directory, per-invocation timeout, and UI
// preferences. Files are TOML, loaded through viper with platform-specific
// directory conventions.
package config
