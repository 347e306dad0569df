package main

import (
	"fmt"

	"github.com/pyforge/wheel-installer/internal/config"
	"github.com/pyforge/wheel-installer/internal/fetcher"
	"github.com/pyforge/wheel-installer/internal/index"
	"github.com/pyforge/wheel-installer/internal/installer"
	"github.com/pyforge/wheel-installer/internal/pipeline"
	"github.com/pyforge/wheel-installer/internal/reqfile"
	"github.com/pyforge/wheel-installer/internal/utils/logger"
	"github.com/pyforge/wheel-installer/internal/utils/network"
	"github.com/pyforge/wheel-installer/internal/wheel"
	"github.com/spf13/cobra"
)

// Install command flags
var (
	workers   int    = -1 // -1 means use config file value
	cacheDir  string = "" // Empty means use config file value
	targetDir string = "" // Empty means use config file value
	indexURL  string = "" // Empty means use config file value
	strict    bool   = false
)

// createInstallCommand creates the install subcommand
func createInstallCommand() *cobra.Command {
	installCmd := &cobra.Command{
		Use:   "install [flags] [REQUIREMENTS_FILE]",
		Short: "Install a batch of wheel packages",
		Long: `Install every requirement listed in the given requirements file
(default: requirements.txt). Each line is either a bare package name or an
exact pin in the form name==version. Requirements that cannot be installed
are listed on standard output, one per line, in input order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: executeInstall,
	}

	installCmd.Flags().IntVarP(&workers, "workers", "w", -1,
		"Number of concurrent requirement pipelines")
	installCmd.Flags().StringVarP(&cacheDir, "cache-dir", "d", "",
		"Wheel download cache directory")
	installCmd.Flags().StringVarP(&targetDir, "target-dir", "t", "",
		"Directory wheels are unpacked into")
	installCmd.Flags().StringVarP(&indexURL, "index-url", "i", "",
		"Base URL of the package index JSON API")
	installCmd.Flags().BoolVar(&strict, "strict", false,
		"Exit non-zero when any requirement fails")

	return installCmd
}

// executeInstall handles the install command execution logic
func executeInstall(cmd *cobra.Command, args []string) error {
	applyFlagOverrides(cmd)

	log := logger.Logger()

	path := reqfile.DefaultPath
	if len(args) > 0 {
		path = args[0]
	}

	reqs, err := reqfile.Load(path)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		log.Infof("no requirements in %s, nothing to do", path)
		return nil
	}

	batch, err := buildBatch(cmd, false)
	if err != nil {
		return err
	}

	report := batch.Run(cmd.Context(), reqs)

	failed := report.Failed()
	log.Infof("batch complete: %d installed, %d failed", len(reqs)-len(failed), len(failed))

	if strict && len(failed) > 0 {
		return fmt.Errorf("%d of %d requirements failed", len(failed), len(reqs))
	}
	return nil
}

// applyFlagOverrides folds changed command-line flags into the global
// config singleton.
func applyFlagOverrides(cmd *cobra.Command) {
	if cmd.Flags().Changed("workers") {
		currentConfig := config.Global()
		currentConfig.Workers = workers
		config.SetGlobal(currentConfig)
	}
	if cmd.Flags().Changed("cache-dir") {
		currentConfig := config.Global()
		currentConfig.CacheDir = cacheDir
		config.SetGlobal(currentConfig)
	}
	if cmd.Flags().Changed("target-dir") {
		currentConfig := config.Global()
		currentConfig.TargetDir = targetDir
		config.SetGlobal(currentConfig)
	}
	if cmd.Flags().Changed("index-url") {
		currentConfig := config.Global()
		currentConfig.IndexURL = indexURL
		config.SetGlobal(currentConfig)
	}
}

// buildBatch wires the resolver, fetcher and installer into a batch
// coordinator using the effective configuration.
func buildBatch(cmd *cobra.Command, downloadOnly bool) (*pipeline.Batch, error) {
	if err := config.EnsureCacheDir(); err != nil {
		return nil, fmt.Errorf("preparing cache directory: %v", err)
	}

	resolvedCacheDir, err := config.CacheDir()
	if err != nil {
		return nil, err
	}

	env, err := wheel.NewEnvironment(config.PythonVersion(), config.Platforms())
	if err != nil {
		return nil, fmt.Errorf("building environment tags: %v", err)
	}

	client := network.NewSecureHTTPClient()

	p := &pipeline.Pipeline{
		Resolver:     index.NewResolver(config.IndexURL(), client),
		Env:          env,
		Fetcher:      fetcher.New(client),
		TempDir:      config.TempDir(),
		CacheDir:     resolvedCacheDir,
		DownloadOnly: downloadOnly,
	}

	if !downloadOnly {
		if err := config.EnsureTargetDir(); err != nil {
			return nil, fmt.Errorf("preparing target directory: %v", err)
		}
		resolvedTargetDir, err := config.TargetDir()
		if err != nil {
			return nil, err
		}
		p.Installer = installer.New(resolvedTargetDir)
	}

	return &pipeline.Batch{
		Pipeline: p,
		Workers:  config.Workers(),
		Progress: true,
		Out:      cmd.OutOrStdout(),
	}, nil
}
