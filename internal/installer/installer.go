package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/pyforge/wheel-installer/internal/utils/logger"
	"github.com/pyforge/wheel-installer/internal/utils/security"
	"github.com/pyforge/wheel-installer/internal/wheel"
)

// Installer applies a downloaded wheel to the local environment. The
// pipeline treats it as a collaborator; only the contract matters there.
type Installer interface {
	Install(ctx context.Context, wheelPath string) error
}

// WheelInstaller unpacks wheel archives into a target directory,
// replacing any previously installed version of the same distribution.
type WheelInstaller struct {
	TargetDir string
}

// New creates a WheelInstaller writing into targetDir.
func New(targetDir string) *WheelInstaller {
	return &WheelInstaller{TargetDir: targetDir}
}

// Install unpacks the wheel at wheelPath into TargetDir. An existing
// install of the same distribution is removed first so a version change
// never leaves stale files behind.
func (w *WheelInstaller) Install(ctx context.Context, wheelPath string) error {
	log := logger.Logger()

	desc, err := wheel.ParseFilename(filepath.Base(wheelPath))
	if err != nil {
		return fmt.Errorf("installing %s: %w", wheelPath, err)
	}

	if err := os.MkdirAll(w.TargetDir, 0o755); err != nil {
		return fmt.Errorf("creating target directory %s: %w", w.TargetDir, err)
	}

	if err := w.removeInstalled(desc.Distribution); err != nil {
		return fmt.Errorf("removing previous install of %s: %w", desc.Distribution, err)
	}

	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return fmt.Errorf("opening wheel %s: %w", wheelPath, err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("installing %s: %w", desc.Distribution, err)
		}
		if err := w.extractFile(file); err != nil {
			return fmt.Errorf("installing %s: %w", desc.Distribution, err)
		}
	}

	log.Infof("installed %s %s into %s", desc.Distribution, desc.Version, w.TargetDir)
	return nil
}

// removeInstalled deletes the dist-info directory of a previous install of
// the distribution, plus the package trees its RECORD-free layout implies
// (the top-level entries sharing the distribution's import name).
func (w *WheelInstaller) removeInstalled(distribution string) error {
	pattern := filepath.Join(w.TargetDir, distribution+"-*.dist-info")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("glob %q: %w", pattern, err)
	}
	for _, m := range matches {
		if err := os.RemoveAll(m); err != nil {
			return err
		}
	}

	importName := strings.ReplaceAll(distribution, "-", "_")
	for _, candidate := range []string{importName, importName + ".py"} {
		path := filepath.Join(w.TargetDir, candidate)
		if _, err := os.Stat(path); err == nil {
			if err := os.RemoveAll(path); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *WheelInstaller) extractFile(file *zip.File) error {
	target, err := security.SanitizeArchivePath(w.TargetDir, file.Name)
	if err != nil {
		return err
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", file.Name, err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("opening archive member %s: %w", file.Name, err)
	}
	defer src.Close()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return dst.Close()
}
