// SPDX-License-Identifier: MPL-2.0

package vagrant

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// StateRunning means the machine is up.
	StateRunning MachineState = "running"
	// StatePoweroff means the machine is halted.
	StatePoweroff MachineState = "poweroff"
	// StateNotCreated means the machine has never been brought up.
	StateNotCreated MachineState = "not_created"
	// StateSaved means the machine state was suspended to disk.
	StateSaved MachineState = "saved"
	// StateAborted means the machine process terminated unexpectedly.
	StateAborted MachineState = "aborted"
)

var (
	// ErrCommandFailed is the sentinel error wrapped by CommandError.
	ErrCommandFailed = errors.New("vagrant command failed")

	// ErrBinaryNotFound is returned when no vagrant binary could be located.
	ErrBinaryNotFound = errors.New("vagrant binary not found")

	// ErrStatusUnavailable is returned by EmptyClient for operations that
	// require a working vagrant environment.
	ErrStatusUnavailable = errors.New("vagrant status unavailable")
)

type (
	// MachineState is the state value reported by a machine-readable
	// "state" record. Values other than the defined constants are passed
	// through untouched; vagrant providers may report additional states.
	MachineState string

	// MachineStatus is the status of a single vagrant machine.
	MachineStatus struct {
		// Name is the machine name (the record target).
		Name string
		// State is the reported machine state.
		State MachineState
		// Provider is the provider name when reported (e.g. "virtualbox").
		Provider string
		// Raw is the raw machine-readable line the state came from.
		Raw string
	}

	// CommandError is returned when the vagrant process exits non-zero.
	// It wraps ErrCommandFailed for errors.Is() compatibility.
	CommandError struct {
		Args     []string
		ExitCode int
		Stderr   string
	}

	// Client queries a vagrant environment. All operations are synchronous;
	// status and ssh-config results are cached on the client and refreshed
	// when refresh is true.
	Client interface {
		// WorkingDir returns the directory the vagrant commands run in.
		WorkingDir() string

		// Status returns the status of every machine keyed by name.
		// An environment with no machines yields an empty map.
		Status(ctx context.Context, refresh bool) (map[string]MachineStatus, error)

		// AllRunning reports whether every machine is running. It is false
		// when no machines are defined at all.
		AllRunning(ctx context.Context, refresh bool) (bool, error)

		// AnyRunning reports whether at least one machine is running.
		AnyRunning(ctx context.Context, refresh bool) (bool, error)

		// RunningMachines returns the names of running machines in the
		// order vagrant reported them.
		RunningMachines(ctx context.Context, refresh bool) ([]string, error)

		// SSHConfig fetches the ssh-config for all machines into a managed
		// temp file and returns its path.
		SSHConfig(ctx context.Context, refresh bool) (string, error)

		// WriteSSHConfig fetches the ssh-config for the given machines
		// (all machines when none are named) and writes it to path.
		WriteSSHConfig(ctx context.Context, path string, machines ...string) error
	}
)

// Running reports whether the machine state is "running".
func (s MachineStatus) Running() bool {
	return s.State == StateRunning
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	msg := fmt.Sprintf("vagrant %s failed with exit code %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns ErrCommandFailed so callers can use errors.Is.
func (e *CommandError) Unwrap() error { return ErrCommandFailed }
