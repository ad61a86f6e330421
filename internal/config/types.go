// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"mvdan.cc/sh/v3/shell"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultCommand is the vagrant command used when none is configured.
	DefaultCommand = "vagrant"
	// DefaultTimeout bounds each vagrant invocation by default.
	DefaultTimeout = 60 * time.Second
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidCommand is the sentinel error wrapped by InvalidCommandError.
	ErrInvalidCommand = errors.New("invalid vagrant command")
	// ErrInvalidTimeout is returned when the configured timeout is negative.
	ErrInvalidTimeout = errors.New("invalid timeout")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidCommandError is returned when the configured vagrant command is
	// empty or cannot be split into words.
	// It wraps ErrInvalidCommand for errors.Is() compatibility.
	InvalidCommandError struct {
		Value string
		Cause error
	}

	// UIConfig holds terminal output preferences.
	UIConfig struct {
		// ColorScheme selects the lipgloss/glamour style ("auto", "dark", "light").
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		// Verbose enables debug logging and full error chains.
		Verbose bool `mapstructure:"verbose"`
	}

	// Config is the vagabond configuration.
	Config struct {
		// Command is the vagrant command, shell-style. Extra words become
		// arguments inserted before every subcommand ("vagrant --no-color").
		Command string `mapstructure:"command"`
		// WorkingDir is the directory containing the Vagrantfile ("" = cwd).
		WorkingDir string `mapstructure:"working_dir"`
		// Timeout bounds each vagrant invocation (0 disables the bound).
		Timeout time.Duration `mapstructure:"timeout"`
		// SSHConfigDir is where fetched ssh-config files are written
		// ("" = the OS temp directory).
		SSHConfigDir string `mapstructure:"ssh_config_dir"`
		// UI holds terminal output preferences.
		UI UIConfig `mapstructure:"ui"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme so callers can use errors.Is.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns an error if the ColorScheme is not one of the defined
// schemes. The zero value ("") is valid and treated as "auto".
func (s ColorScheme) Validate() error {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight, "":
		return nil
	default:
		return &InvalidColorSchemeError{Value: s}
	}
}

// String returns the string representation of the ColorScheme.
func (s ColorScheme) String() string { return string(s) }

// Error implements the error interface.
func (e *InvalidCommandError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid vagrant command %q: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid vagrant command %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidCommand so callers can use errors.Is.
func (e *InvalidCommandError) Unwrap() error { return ErrInvalidCommand }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Command: DefaultCommand,
		Timeout: DefaultTimeout,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// CommandArgs splits the configured command into the binary name and the
// arguments inserted before every subcommand. Shell-style quoting is
// honored, so `command = "vagrant --machine-comm 'ssh agent'"` works.
func (c *Config) CommandArgs() (binary string, baseArgs []string, err error) {
	if strings.TrimSpace(c.Command) == "" {
		return "", nil, &InvalidCommandError{Value: c.Command}
	}

	fields, err := shell.Fields(c.Command, nil)
	if err != nil {
		return "", nil, &InvalidCommandError{Value: c.Command, Cause: err}
	}
	if len(fields) == 0 {
		return "", nil, &InvalidCommandError{Value: c.Command}
	}

	return fields[0], fields[1:], nil
}

// Validate checks every typed field of the Config.
func (c *Config) Validate() error {
	var errs []error
	if _, _, err := c.CommandArgs(); err != nil {
		errs = append(errs, err)
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidTimeout, c.Timeout))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
