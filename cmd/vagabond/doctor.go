// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"vagabond-cli/internal/issue"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that vagabond can talk to vagrant",
	Long: `Check that vagabond can talk to vagrant: the binary is on PATH, it
answers a version query, and a status query succeeds in the working
directory. Exits with status 1 when any check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd.Context(), cmd.OutOrStdout())
	},
}

// runDoctor runs the environment checks and prints one line per check.
func runDoctor(ctx context.Context, w io.Writer) error {
	ok := SuccessStyle.Render("✓")
	fail := ErrorStyle.Render("✗")
	failed := false

	client, err := newVagrantClient()
	if err != nil {
		fmt.Fprintf(w, "%s vagrant binary: %s\n", fail, formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1}
	}
	fmt.Fprintf(w, "%s vagrant binary: %s\n", ok, client.BinaryPath())

	if version, err := client.Version(ctx); err != nil {
		failed = true
		fmt.Fprintf(w, "%s vagrant version: %s\n", fail, formatErrorForDisplay(err, verbose))
	} else {
		fmt.Fprintf(w, "%s vagrant version: %s\n", ok, version)
	}

	if statuses, err := client.Status(ctx, true); err != nil {
		failed = true
		fmt.Fprintf(w, "%s status query: %s\n", fail, formatErrorForDisplay(err, verbose))
		if rendered, renderErr := issue.Get(issueForStatusFailure(err)).Render(currentColorScheme().String()); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
	} else {
		fmt.Fprintf(w, "%s status query: %d machine(s) defined\n", ok, len(statuses))
	}

	if failed {
		return &ExitError{Code: 1}
	}
	return nil
}

// issueForStatusFailure picks the issue card matching a status query failure.
func issueForStatusFailure(err error) issue.Id {
	if isNoVagrantfile(err) {
		return issue.VagrantfileNotFoundId
	}
	return issue.CommandFailedId
}
