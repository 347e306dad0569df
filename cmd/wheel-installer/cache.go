package main

import (
	"fmt"

	"github.com/pyforge/wheel-installer/internal/cache"
	"github.com/spf13/cobra"
)

func createCacheCommand() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached wheels",
		Long: `Manage the wheel download cache.

Available commands:
  clean    Remove cached wheel downloads`,
	}

	cacheCmd.AddCommand(createCacheCleanCommand())

	return cacheCmd
}

func createCacheCleanCommand() *cobra.Command {
	var opts cache.CleanOptions

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove cached wheel downloads",
		Long: `Remove cached wheels to reclaim disk space.

By default every cached wheel is removed. Use --distribution to restrict
cleanup to the wheels of a single distribution.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := cache.Clean(opts)
			if err != nil {
				return err
			}

			writer := cmd.OutOrStdout()

			if len(result.RemovedPaths) == 0 {
				fmt.Fprintln(writer, "No cached wheels found.")
				return nil
			}

			header := "Removed:"
			if opts.DryRun {
				fmt.Fprintln(writer, "Dry run: no files were deleted.")
				header = "Would remove:"
			}
			fmt.Fprintln(writer, header)
			for _, path := range result.RemovedPaths {
				fmt.Fprintln(writer, "  "+path)
			}
			fmt.Fprintf(writer, "Reclaimed %d bytes.\n", result.ReclaimedBytes)

			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Distribution, "distribution", "", "Restrict cleanup to one distribution's wheels")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Show what would be removed without deleting anything")

	return cmd
}
