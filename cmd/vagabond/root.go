// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for vagabond.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"vagabond-cli/internal/config"
	"vagabond-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// Verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// workingDir overrides the Vagrantfile directory
	workingDir string

	// logger is the shared CLI logger. Debug output is enabled by --verbose.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "vagabond",
	})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "vagabond",
		Short: "A friendly wrapper around the vagrant CLI",
		Long: TitleStyle.Render("vagabond") + SubtitleStyle.Render(" - A friendly wrapper around the vagrant CLI") + `

vagabond talks to vagrant through its machine-readable output and turns
the results into script-friendly commands: machine status queries,
cleaned-up ssh-config files, and ssh:// URIs you can hand to other tools.

` + SubtitleStyle.Render("Quick Start:") + `
  1. cd into a directory with a Vagrantfile (or pass --dir)
  2. vagabond status            See every machine and its state
  3. vagabond ssh-config        Fetch a cleaned ssh-config file

` + SubtitleStyle.Render("Examples:") + `
  vagabond status               Show the state of all machines
  vagabond running              List machines that are currently up
  vagabond ssh-config -o cfg    Write the ssh-config to a file
  vagabond ssh-uri web          Print an ssh:// URI for machine 'web'
  vagabond uri parse <uri>      Decompose a URI into its components
  vagabond config show          Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/vagabond/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&workingDir, "dir", "C", "", "directory containing the Vagrantfile (default is the current directory)")

	// Add subcommands
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(runningCmd)
	rootCmd.AddCommand(sshConfigCmd)
	rootCmd.AddCommand(sshURICmd)
	rootCmd.AddCommand(uriCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
