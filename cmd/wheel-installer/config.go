package main

import (
	"fmt"

	"github.com/pyforge/wheel-installer/internal/config"
	"github.com/spf13/cobra"
)

// createConfigCommand creates the config subcommand
func createConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage global configuration for wheel-installer.

Available commands:
  init    Initialize a new configuration file with default values
  show    Print the effective configuration`,
	}

	configCmd.AddCommand(createConfigInitCommand())
	configCmd.AddCommand(createConfigShowCommand())

	return configCmd
}

// createConfigInitCommand creates the config init subcommand
func createConfigInitCommand() *cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init [config-file]",
		Short: "Initialize a new configuration file",
		Long: `Initialize a new configuration file with default values.

If no path is specified, the config is created in the current directory as
wheel-installer.yml

Examples:
  # Create config in current directory
  wheel-installer config init

  # Create config at specific location
  wheel-installer config init ~/.config/wheel-installer/config.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: executeConfigInit,
	}

	return initCmd
}

// executeConfigInit handles the config init command logic
func executeConfigInit(cmd *cobra.Command, args []string) error {
	configPath := "wheel-installer.yml"
	if len(args) > 0 {
		configPath = args[0]
	}

	defaultConfig := config.DefaultGlobalConfig()

	if err := defaultConfig.SaveGlobalConfigWithComments(configPath); err != nil {
		return fmt.Errorf("failed to save config file: %v", err)
	}

	writer := cmd.OutOrStdout()
	fmt.Fprintf(writer, "Configuration file created at: %s\n", configPath)
	fmt.Fprintf(writer, "\nDefault configuration settings:\n")
	fmt.Fprintf(writer, "  Workers: %d\n", defaultConfig.Workers)
	fmt.Fprintf(writer, "  Index URL: %s\n", defaultConfig.IndexURL)
	fmt.Fprintf(writer, "  Cache Directory: %s\n", defaultConfig.CacheDir)
	fmt.Fprintf(writer, "  Target Directory: %s\n", defaultConfig.TargetDir)
	fmt.Fprintf(writer, "  Python Version: %s\n", defaultConfig.PythonVersion)
	fmt.Fprintf(writer, "  Log Level: %s\n", defaultConfig.Logging.Level)
	fmt.Fprintf(writer, "\nEdit the configuration file to customize these settings.\n")

	return nil
}

// createConfigShowCommand creates the config show subcommand
func createConfigShowCommand() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE:  executeConfigShow,
	}

	return showCmd
}

// executeConfigShow prints the effective (defaults + file + flag) config
func executeConfigShow(cmd *cobra.Command, args []string) error {
	gc := config.Global()

	cacheDir, err := config.CacheDir()
	if err != nil {
		return err
	}
	targetDir, err := config.TargetDir()
	if err != nil {
		return err
	}

	writer := cmd.OutOrStdout()
	fmt.Fprintf(writer, "workers: %d\n", gc.Workers)
	fmt.Fprintf(writer, "index_url: %s\n", config.IndexURL())
	fmt.Fprintf(writer, "cache_dir: %s\n", cacheDir)
	fmt.Fprintf(writer, "target_dir: %s\n", targetDir)
	fmt.Fprintf(writer, "temp_dir: %s\n", config.TempDir())
	fmt.Fprintf(writer, "python_version: %s\n", gc.PythonVersion)
	if len(gc.Platforms) > 0 {
		fmt.Fprintln(writer, "platforms:")
		for _, p := range gc.Platforms {
			fmt.Fprintf(writer, "  - %s\n", p)
		}
	}
	fmt.Fprintf(writer, "logging.level: %s\n", gc.Logging.Level)
	if gc.Logging.File != "" {
		fmt.Fprintf(writer, "logging.file: %s\n", gc.Logging.File)
	}

	return nil
}
