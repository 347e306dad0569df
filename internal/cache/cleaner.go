package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pyforge/wheel-installer/internal/config"
)

// CleanOptions defines what cached artifacts should be removed.
type CleanOptions struct {
	// Distribution restricts cleanup to wheels of one distribution.
	Distribution string
	// DryRun reports actions without deleting anything.
	DryRun bool
}

// CleanResult contains the outcome of a cache cleanup run.
type CleanResult struct {
	RemovedPaths   []string
	ReclaimedBytes int64
}

// Clean removes cached wheel downloads according to the provided options.
func Clean(opts CleanOptions) (*CleanResult, error) {
	cacheDir, err := config.CacheDir()
	if err != nil {
		return nil, err
	}

	pattern := "*.whl"
	if opts.Distribution != "" {
		pattern = opts.Distribution + "-*.whl"
	}

	matches, err := filepath.Glob(filepath.Join(cacheDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	result := &CleanResult{}
	for _, path := range matches {
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}

		if !opts.DryRun {
			if err := os.Remove(path); err != nil {
				return result, fmt.Errorf("removing %s: %w", path, err)
			}
		}
		result.RemovedPaths = append(result.RemovedPaths, path)
		result.ReclaimedBytes += fi.Size()
	}

	return result, nil
}
