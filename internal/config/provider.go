// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// Provider loads configuration from explicit options, bypassing the cached
// global Load(). Commands that need to report where the configuration came
// from use LoadResolved.
type Provider interface {
	// Load reads configuration from the requested source.
	Load(ctx context.Context, opts LoadOptions) (*Config, error)

	// LoadResolved is Load plus the path of the file the configuration was
	// read from. The path is empty when built-in defaults were used.
	LoadResolved(ctx context.Context, opts LoadOptions) (*Config, string, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := p.LoadResolved(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadResolved reads configuration from the requested source and reports the
// resolved file path.
func (p *fileProvider) LoadResolved(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	return loadWithOptions(ctx, opts)
}
