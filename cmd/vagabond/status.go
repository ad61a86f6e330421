// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"vagabond-cli/internal/issue"
	"vagabond-cli/pkg/vagrant"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var statusCmd = &cobra.Command{
	Use:   "status [machine...]",
	Short: "Show the state of vagrant machines",
	Long: `Show the state of vagrant machines.

Without arguments, every machine defined in the Vagrantfile is listed.
With machine names, only those machines are shown; naming a machine that
does not exist is an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newVagrantClient()
		if err != nil {
			return err
		}
		return runStatus(cmd.Context(), cmd.OutOrStdout(), client, args)
	},
}

var runningCmd = &cobra.Command{
	Use:   "running",
	Short: "List machines that are currently running",
	Long: `List machines that are currently running, one name per line.

Exits with status 1 when no machine is running, so the command can be
used as a guard in scripts:

  vagabond running -q && vagabond ssh-config -o dev.ssh-config`,
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")
		client, err := newVagrantClient()
		if err != nil {
			return err
		}
		return runRunning(cmd.Context(), cmd.OutOrStdout(), client, quiet)
	},
}

func init() {
	runningCmd.Flags().BoolP("quiet", "q", false, "suppress output, only set the exit status")
}

// runStatus fetches machine statuses and prints one styled row per machine.
func runStatus(ctx context.Context, w io.Writer, client vagrant.Client, names []string) error {
	statuses, err := client.Status(ctx, true)
	if err != nil {
		return wrapVagrantError(err, "fetch vagrant status", currentColorScheme())
	}

	if len(names) == 0 {
		names = maps.Keys(statuses)
		slices.Sort(names)
	}

	if len(names) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("(no machines defined)"))
		return nil
	}

	for _, name := range names {
		st, ok := statuses[name]
		if !ok {
			return machineNotFoundError(name, statuses)
		}
		provider := st.Provider
		if provider == "" {
			provider = "unknown"
		}
		fmt.Fprintf(w, "%-20s %-14s %s\n",
			CmdStyle.Render(name),
			styleForState(st.State).Render(string(st.State)),
			SubtitleStyle.Render("("+provider+")"))
	}

	return nil
}

// runRunning prints running machine names and signals "none" via exit status.
func runRunning(ctx context.Context, w io.Writer, client vagrant.Client, quiet bool) error {
	machines, err := client.RunningMachines(ctx, true)
	if err != nil {
		return wrapVagrantError(err, "fetch vagrant status", currentColorScheme())
	}

	if !quiet {
		for _, name := range machines {
			fmt.Fprintln(w, name)
		}
	}

	if len(machines) == 0 {
		return &ExitError{Code: 1}
	}
	return nil
}

// styleForState maps a machine state to a display style.
func styleForState(state vagrant.MachineState) lipgloss.Style {
	switch state {
	case vagrant.StateRunning:
		return SuccessStyle
	case vagrant.StatePoweroff, vagrant.StateAborted:
		return ErrorStyle
	case vagrant.StateSaved:
		return WarningStyle
	case vagrant.StateNotCreated:
		return SubtitleStyle
	default:
		return WarningStyle
	}
}

// machineNotFoundError reports an unknown machine name, listing the known ones.
func machineNotFoundError(name string, statuses map[string]vagrant.MachineStatus) error {
	known := maps.Keys(statuses)
	slices.Sort(known)

	if verbose {
		if rendered, err := issue.Get(issue.MachineNotFoundId).Render(currentColorScheme().String()); err == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
	}

	ctx := issue.NewErrorContext().
		WithOperation("look up machine").
		WithResource(name).
		WithSuggestion("Run 'vagabond status' to list all machines")
	if len(known) > 0 {
		ctx = ctx.WithSuggestion(fmt.Sprintf("Known machines: %v", known))
	}
	return ctx.
		Wrap(fmt.Errorf("machine %q not defined in this vagrant environment", name)).
		BuildError()
}
