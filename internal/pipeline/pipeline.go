package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pyforge/wheel-installer/internal/fetcher"
	"github.com/pyforge/wheel-installer/internal/index"
	"github.com/pyforge/wheel-installer/internal/installer"
	"github.com/pyforge/wheel-installer/internal/utils/logger"
	"github.com/pyforge/wheel-installer/internal/wheel"
)

// Pipeline processes one requirement at a time through the
// resolve -> select -> fetch -> install stages. Instances are stateless
// and safe to share across workers; each Run owns its own scratch space.
type Pipeline struct {
	Resolver  *index.Resolver
	Env       *wheel.Environment
	Fetcher   *fetcher.Fetcher
	Installer installer.Installer

	// TempDir hosts the per-requirement scratch directories.
	TempDir string
	// CacheDir, when set, keeps downloaded wheels between runs; an
	// existing non-empty cached wheel short-circuits the fetch stage.
	CacheDir string
	// DownloadOnly stops after the fetch stage, leaving the wheel in the
	// cache directory.
	DownloadOnly bool
}

// Run drives req through the stages and always produces a terminal
// Outcome; failures are captured as data, never returned as errors.
func (p *Pipeline) Run(ctx context.Context, req Requirement) Outcome {
	log := logger.Logger()

	// Resolving
	metadata, err := p.Resolver.Resolve(ctx, req.Name, req.Version)
	if err != nil {
		if errors.Is(err, index.ErrNotFound) {
			return Outcome{Requirement: req, Kind: Missing, Detail: err.Error()}
		}
		// Resolver absorbs everything else into ErrNotFound; reaching
		// here means a collaborator broke its contract.
		return Outcome{Requirement: req, Kind: Missing, Detail: err.Error()}
	}

	records, ok := metadata.Records(req.Version)
	if !ok {
		return Outcome{
			Requirement: req,
			Kind:        Missing,
			Detail:      fmt.Sprintf("version %s not in releases", effectiveVersion(req, metadata)),
		}
	}

	// Selecting
	filenames := make([]string, len(records))
	for i, rec := range records {
		filenames[i] = rec.Filename
	}
	best, err := wheel.SelectBest(p.Env, filenames)
	if err != nil {
		return Outcome{Requirement: req, Kind: NoCompatibleWheel, Detail: err.Error()}
	}
	winner := records[best]
	log.Debugf("selected %s for %s", winner.Filename, req)

	// Fetching
	wheelPath, cleanup, err := p.fetchWinner(ctx, winner)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		return Outcome{Requirement: req, Kind: TransportFailure, Detail: err.Error()}
	}

	if p.DownloadOnly {
		return Outcome{Requirement: req, Kind: Installed, Detail: "downloaded " + winner.Filename}
	}

	// Installing
	if err := p.Installer.Install(ctx, wheelPath); err != nil {
		return Outcome{Requirement: req, Kind: InstallFailure, Detail: err.Error()}
	}

	return Outcome{Requirement: req, Kind: Installed}
}

// fetchWinner produces a local path for the winning wheel. The returned
// cleanup releases the scratch directory and must run on every exit path
// of the caller; it is non-nil whenever scratch space was acquired.
func (p *Pipeline) fetchWinner(ctx context.Context, winner index.ArtifactRecord) (string, func(), error) {
	log := logger.Logger()

	if p.CacheDir != "" {
		cached := filepath.Join(p.CacheDir, winner.Filename)
		if fi, err := os.Stat(cached); err == nil && fi.Size() > 0 {
			log.Debugf("using cached %s", winner.Filename)
			return cached, nil, nil
		}
	}

	scratch := filepath.Join(p.TempDir, "wheel-installer-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o700); err != nil {
		return "", nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(scratch); err != nil {
			log.Warnf("removing scratch directory %s: %v", scratch, err)
		}
	}

	dest := filepath.Join(scratch, winner.Filename)
	if err := p.Fetcher.Fetch(ctx, winner.URL, dest); err != nil {
		return "", cleanup, err
	}

	if p.CacheDir != "" {
		cached := filepath.Join(p.CacheDir, winner.Filename)
		if err := persistToCache(dest, cached); err != nil {
			// Cache population is best-effort; install from scratch space.
			log.Warnf("caching %s: %v", winner.Filename, err)
			return dest, cleanup, nil
		}
		return cached, cleanup, nil
	}

	return dest, cleanup, nil
}

func effectiveVersion(req Requirement, metadata *index.PackageMetadata) string {
	if req.Version != "" {
		return req.Version
	}
	return metadata.Info.Version
}

// persistToCache moves src into the cache, falling back to a copy when the
// rename crosses filesystems.
func persistToCache(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
