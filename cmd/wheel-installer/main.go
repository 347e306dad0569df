package main

import (
	"fmt"
	"os"

	"github.com/pyforge/wheel-installer/internal/config"
	"github.com/pyforge/wheel-installer/internal/utils/logger"
	"github.com/pyforge/wheel-installer/internal/utils/security"
	"github.com/spf13/cobra"
)

// Command-line flags that can override config file settings
var (
	configFile string = "" // Path to config file
	logLevel   string = "" // Empty means use config file value
)

func main() {
	configFilePath := configFile
	if configFilePath == "" {
		configFilePath = config.FindConfigFile()
	}

	globalConfig, err := config.LoadGlobalConfig(configFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	config.SetGlobal(globalConfig)

	_, cleanup := logger.InitWithLevel(globalConfig.Logging.Level)
	defer cleanup()

	rootCmd := createRootCommand()

	// Run every command's persistent hooks, not just the closest one, so
	// the root-level override below still fires for subcommands.
	cobra.EnableTraverseRunHooks = true

	// Handle log level override after flag parsing
	prev := rootCmd.PersistentPreRunE
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if logLevel != "" {
			globalConfig.Logging.Level = logLevel
			config.SetGlobal(globalConfig)
			logger.SetLogLevel(logLevel)
		}
		if prev != nil {
			return prev(cmd, args)
		}
		return nil
	}

	log := logger.Logger()
	if configFilePath != "" {
		log.Infof("Using configuration from: %s", configFilePath)
	}
	cacheDir, _ := config.CacheDir()
	targetDir, _ := config.TargetDir()
	log.Debugf("Config: workers=%d, index_url=%s, cache_dir=%s, target_dir=%s",
		config.Workers(), config.IndexURL(), cacheDir, targetDir)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// createRootCommand creates and configures the root cobra command with all subcommands
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wheel-installer",
		Short: "Batch installer for Python wheel packages",
		Long: `wheel-installer resolves a batch of package requirements against a
PyPI-style index, picks the best-matching binary wheel for the target
environment, downloads it, and unpacks it into a site-packages directory.
All requirements are processed concurrently; one failing requirement never
stops the rest of the batch.

Use 'wheel-installer --help' to see available commands.
Use 'wheel-installer <command> --help' for more information about a command.`,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level (debug, info, warn, error)")

	rootCmd.AddCommand(createInstallCommand())
	rootCmd.AddCommand(createDownloadCommand())
	rootCmd.AddCommand(createCacheCommand())
	rootCmd.AddCommand(createConfigCommand())
	rootCmd.AddCommand(createVersionCommand())
	rootCmd.AddCommand(createInstallCompletionCommand())

	security.AttachRecursive(rootCmd, security.DefaultLimits())

	return rootCmd
}
