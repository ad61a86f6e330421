// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "fetch vagrant status"},
			expected: "failed to fetch vagrant status",
		},
		{
			name:     "operation and resource",
			err:      &ActionableError{Operation: "write ssh-config", Resource: "/tmp/out"},
			expected: "failed to write ssh-config: /tmp/out",
		},
		{
			name: "operation resource and cause",
			err: &ActionableError{
				Operation: "fetch vagrant status",
				Resource:  "/home/joe/vms",
				Cause:     errors.New("exit status 1"),
			},
			expected: "failed to fetch vagrant status: /home/joe/vms: exit status 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying")
	err := NewErrorContext().
		WithOperation("fetch vagrant status").
		Wrap(cause).
		BuildError()

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("exit status 1")
	err := NewErrorContext().
		WithOperation("fetch vagrant status").
		WithSuggestion("Check that a Vagrantfile exists").
		WithSuggestion("Run vagrant status directly").
		Wrap(fmt.Errorf("run vagrant: %w", inner)).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "• Check that a Vagrantfile exists") {
		t.Errorf("Format(false) missing suggestion:\n%s", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) must not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Errorf("Format(true) missing error chain:\n%s", verbose)
	}
	if !strings.Contains(verbose, "2. exit status 1") {
		t.Errorf("Format(true) should unwrap to the innermost cause:\n%s", verbose)
	}
}

func TestErrorContext_BuildRequiresOperation(t *testing.T) {
	t.Parallel()

	if err := NewErrorContext().WithResource("x").BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil", err)
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()

	if got := WrapWithOperation(nil, "noop"); got != nil {
		t.Errorf("WrapWithOperation(nil) = %v, want nil", got)
	}

	cause := errors.New("boom")
	got := WrapWithOperation(cause, "load config")
	if got.Operation != "load config" || !errors.Is(got, cause) {
		t.Errorf("WrapWithOperation() = %+v", got)
	}
}
