package main

import (
	"github.com/pyforge/wheel-installer/internal/reqfile"
	"github.com/pyforge/wheel-installer/internal/utils/logger"
	"github.com/spf13/cobra"
)

// createDownloadCommand creates the download subcommand
func createDownloadCommand() *cobra.Command {
	downloadCmd := &cobra.Command{
		Use:   "download [flags] [REQUIREMENTS_FILE]",
		Short: "Download wheels without installing them",
		Long: `Resolve and download the best-matching wheel for every requirement in
the given requirements file (default: requirements.txt), leaving the wheels
in the cache directory. Nothing is unpacked into the target directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: executeDownload,
	}

	downloadCmd.Flags().IntVarP(&workers, "workers", "w", -1,
		"Number of concurrent requirement pipelines")
	downloadCmd.Flags().StringVarP(&cacheDir, "cache-dir", "d", "",
		"Wheel download cache directory")
	downloadCmd.Flags().StringVarP(&indexURL, "index-url", "i", "",
		"Base URL of the package index JSON API")

	return downloadCmd
}

// executeDownload handles the download command execution logic
func executeDownload(cmd *cobra.Command, args []string) error {
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

	batch, err := buildBatch(cmd, true)
	if err != nil {
		return err
	}

	report := batch.Run(cmd.Context(), reqs)

	failed := report.Failed()
	log.Infof("batch complete: %d downloaded, %d failed", len(reqs)-len(failed), len(failed))

	return nil
}
