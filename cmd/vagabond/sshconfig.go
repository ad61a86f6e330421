// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"vagabond-cli/internal/issue"
	"vagabond-cli/pkg/vagrant"

	"github.com/spf13/cobra"
)

var sshConfigCmd = &cobra.Command{
	Use:   "ssh-config [machine...]",
	Short: "Fetch a cleaned-up ssh-config for vagrant machines",
	Long: `Fetch the ssh-config vagrant generates for its machines.

The output is post-processed so it can be fed straight to ssh -F or
reused from other hosts: UserKnownHostsFile lines are removed and quotes
are stripped from IdentityFile paths.

By default the config is printed to stdout. With --output it is written
to a file instead and the path is confirmed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		client, err := newVagrantClient()
		if err != nil {
			return err
		}
		return runSSHConfig(cmd.Context(), cmd.OutOrStdout(), client, output, args)
	},
}

var sshURICmd = &cobra.Command{
	Use:   "ssh-uri [machine]",
	Short: "Print an ssh:// URI for a vagrant machine",
	Long: `Print an ssh:// URI for a vagrant machine, built from the ssh-config
vagrant generates. The URI carries the user, host, port, and an
identityfile query parameter:

  ssh://vagrant@127.0.0.1:2222?identityfile=/path/to/private_key

Without a machine argument, one line per machine is printed in the form
"<name> <uri>". With --file an existing ssh-config file is parsed
instead of invoking vagrant.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		machine := ""
		if len(args) == 1 {
			machine = args[0]
		}

		var client vagrant.Client
		if file == "" {
			c, err := newVagrantClient()
			if err != nil {
				return err
			}
			client = c
		}
		return runSSHURI(cmd.Context(), cmd.OutOrStdout(), client, file, machine)
	},
}

func init() {
	sshConfigCmd.Flags().StringP("output", "o", "", "write the ssh-config to this file instead of stdout")
	sshURICmd.Flags().StringP("file", "f", "", "parse this ssh-config file instead of invoking vagrant")
}

// runSSHConfig writes the post-processed ssh-config to a file or stdout.
func runSSHConfig(ctx context.Context, w io.Writer, client vagrant.Client, output string, machines []string) error {
	if output != "" {
		if err := client.WriteSSHConfig(ctx, output, machines...); err != nil {
			return wrapVagrantError(err, "write ssh-config", currentColorScheme())
		}
		fmt.Fprintf(w, "%s Wrote ssh-config to %s\n", SuccessStyle.Render("✓"), output)
		return nil
	}

	path, err := fetchSSHConfigPath(ctx, client, machines)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return issue.WrapWithOperation(err, "read fetched ssh-config")
	}
	_, err = w.Write(data)
	return err
}

// fetchSSHConfigPath obtains a file holding the cleaned ssh-config. Machine
// filtering requires a direct write since the cached temp file covers all
// machines.
func fetchSSHConfigPath(ctx context.Context, client vagrant.Client, machines []string) (string, error) {
	if len(machines) == 0 {
		path, err := client.SSHConfig(ctx, true)
		if err != nil {
			return "", wrapVagrantError(err, "fetch ssh-config", currentColorScheme())
		}
		return path, nil
	}

	f, err := os.CreateTemp("", "vagrant.*.ssh-config")
	if err != nil {
		return "", issue.WrapWithOperation(err, "create temp ssh-config")
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		return "", issue.WrapWithOperation(err, "create temp ssh-config")
	}
	if err := client.WriteSSHConfig(ctx, path, machines...); err != nil {
		os.Remove(path)
		return "", wrapVagrantError(err, "fetch ssh-config", currentColorScheme())
	}
	return path, nil
}

// runSSHURI prints ssh:// URIs derived from the ssh-config host blocks.
func runSSHURI(ctx context.Context, w io.Writer, client vagrant.Client, file, machine string) error {
	var r io.ReadCloser
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return issue.NewErrorContext().
				WithOperation("read ssh-config file").
				WithResource(file).
				WithSuggestion("Check that the file exists and is readable").
				Wrap(err).
				BuildError()
		}
		r = f
	} else {
		path, err := fetchSSHConfigPath(ctx, client, nil)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return issue.WrapWithOperation(err, "read fetched ssh-config")
		}
		r = f
	}
	defer r.Close()

	hosts, err := vagrant.ParseSSHConfig(r)
	if err != nil {
		return issue.WrapWithOperation(err, "parse ssh-config")
	}
	if len(hosts) == 0 {
		return issue.NewErrorContext().
			WithOperation("build ssh uri").
			WithSuggestion("Start a machine first with 'vagrant up'").
			Wrap(fmt.Errorf("ssh-config contains no host blocks")).
			BuildError()
	}

	if machine == "" {
		if len(hosts) == 1 {
			fmt.Fprintln(w, hosts[0].URI().String())
			return nil
		}
		for _, h := range hosts {
			fmt.Fprintf(w, "%s %s\n", h.Host, h.URI().String())
		}
		return nil
	}

	for _, h := range hosts {
		if h.Host == machine {
			fmt.Fprintln(w, h.URI().String())
			return nil
		}
	}

	known := make(map[string]vagrant.MachineStatus, len(hosts))
	for _, h := range hosts {
		known[h.Host] = vagrant.MachineStatus{Name: h.Host}
	}
	return machineNotFoundError(machine, known)
}
