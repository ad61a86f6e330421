// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"vagabond-cli/internal/config"
	"vagabond-cli/internal/issue"
	"vagabond-cli/pkg/vagrant"
)

// newVagrantClient builds a vagrant client from the loaded configuration and
// the global flags. The --dir flag wins over the configured working_dir.
func newVagrantClient() (*vagrant.CLIClient, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	binary, baseArgs, err := cfg.CommandArgs()
	if err != nil {
		return nil, err
	}

	resolved, lookErr := exec.LookPath(binary)
	if lookErr != nil {
		rendered, _ := issue.Get(issue.VagrantNotFoundId).Render(currentColorScheme().String())
		fmt.Fprint(os.Stderr, rendered)
		return nil, issue.NewErrorContext().
			WithOperation("locate vagrant binary").
			WithResource(binary).
			WithSuggestion("Install vagrant from https://developer.hashicorp.com/vagrant").
			WithSuggestion("Check that the 'command' setting in config.toml names an executable on PATH").
			Wrap(fmt.Errorf("%w: %v", vagrant.ErrBinaryNotFound, lookErr)).
			BuildError()
	}

	opts := []vagrant.CLIClientOption{
		vagrant.WithBinaryPath(resolved),
		vagrant.WithBaseArgs(baseArgs...),
		vagrant.WithLogger(logger),
	}

	dir := workingDir
	if dir == "" {
		dir = cfg.WorkingDir
	}
	if dir != "" {
		opts = append(opts, vagrant.WithWorkingDir(dir))
	}

	if cfg.SSHConfigDir != "" {
		opts = append(opts, vagrant.WithSSHConfigDir(cfg.SSHConfigDir))
	}

	if cfg.Timeout >= 0 {
		opts = append(opts, vagrant.WithTimeout(cfg.Timeout))
	}

	return vagrant.NewCLIClient(opts...), nil
}

// currentColorScheme returns the configured color scheme, falling back to
// auto detection when the config could not be loaded.
func currentColorScheme() config.ColorScheme {
	cfg, err := config.Load()
	if err != nil || cfg == nil || cfg.UI.ColorScheme == "" {
		return config.ColorSchemeAuto
	}
	return cfg.UI.ColorScheme
}

// wrapVagrantError decorates a failed vagrant invocation with suggestions
// and, for well-known failures, a rendered issue card on stderr.
func wrapVagrantError(err error, operation string, colorScheme config.ColorScheme) error {
	if err == nil {
		return nil
	}

	var id issue.Id
	switch {
	case isNoVagrantfile(err):
		id = issue.VagrantfileNotFoundId
	case strings.Contains(operation, "ssh-config"):
		id = issue.SSHConfigFailedId
	default:
		id = issue.CommandFailedId
	}
	if verbose {
		if rendered, renderErr := issue.Get(id).Render(colorScheme.String()); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
	}

	return issue.NewErrorContext().
		WithOperation(operation).
		WithSuggestion("Run the vagrant command directly to see its full output").
		WithSuggestion("Pass --dir to point at the directory containing the Vagrantfile").
		Wrap(err).
		BuildError()
}

// isNoVagrantfile reports whether a vagrant failure looks like a missing
// Vagrantfile. Vagrant prints the hint on stderr, which CommandError captures.
func isNoVagrantfile(err error) bool {
	var cmdErr *vagrant.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	stderr := strings.ToLower(cmdErr.Stderr)
	return strings.Contains(stderr, "vagrant environment") ||
		strings.Contains(stderr, "vagrantfile")
}
