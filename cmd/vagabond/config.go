// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vagabond-cli/internal/config"
	"vagabond-cli/internal/issue"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vagabond configuration",
	Long: `Manage vagabond configuration.

Configuration is stored in:
  - Linux: ~/.config/vagabond/config.toml
  - macOS: ~/Library/Application Support/vagabond/config.toml
  - Windows: %APPDATA%\vagabond\config.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context())
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(args[0], args[1])
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			content, err := config.GenerateTOML(cfg)
			if err != nil {
				return err
			}
			fmt.Print(content)
			return nil
		},
	})
}

func showConfig(ctx context.Context) error {
	// Load through the provider seam rather than the cached global so the
	// display always reflects the file on disk and its resolved path.
	cfg, cfgPath, err := config.NewProvider().LoadResolved(ctx, config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render(currentColorScheme().String())
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(headerStyle.Render("Current Configuration"))
	fmt.Println()

	if cfgPath != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	// Show values
	fmt.Printf("%s: %s\n", keyStyle.Render("command"), valueStyle.Render(cfg.Command))
	if cfg.WorkingDir != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("working_dir"), valueStyle.Render(cfg.WorkingDir))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("working_dir"), SubtitleStyle.Render("(current directory)"))
	}
	fmt.Printf("%s: %s\n", keyStyle.Render("timeout"), valueStyle.Render(cfg.Timeout.String()))
	if cfg.SSHConfigDir != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("ssh_config_dir"), valueStyle.Render(cfg.SSHConfigDir))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("ssh_config_dir"), SubtitleStyle.Render("(OS temp directory)"))
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n",
		SuccessStyle.Render("✓"),
		filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))

	return nil
}

func setConfigValue(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "command":
		probe := &config.Config{Command: value}
		if _, _, err := probe.CommandArgs(); err != nil {
			return err
		}
		cfg.Command = value

	case "working_dir":
		cfg.WorkingDir = value

	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("invalid timeout: must not be negative")
		}
		cfg.Timeout = d

	case "ssh_config_dir":
		cfg.SSHConfigDir = value

	case "ui.verbose":
		cfg.UI.Verbose = value == "true" || value == "1"

	case "ui.color_scheme":
		scheme := config.ColorScheme(value)
		if err := scheme.Validate(); err != nil {
			return err
		}
		cfg.UI.ColorScheme = scheme

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: command, working_dir, timeout, ssh_config_dir, ui.verbose, ui.color_scheme", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}
