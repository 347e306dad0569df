package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SymlinkPolicy defines how to handle symlinks when reading or writing files.
type SymlinkPolicy int

const (
	// RejectSymlinks - reject any symlinks and return an error
	RejectSymlinks SymlinkPolicy = iota
	// ResolveSymlinks - resolve symlinks and use the target path
	ResolveSymlinks
)

// checkSymlink validates a file path according to the specified policy and
// returns the path to operate on.
func checkSymlink(path string, policy SymlinkPolicy) (string, error) {
	fileInfo, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing at the path yet; safe for writes.
			return path, nil
		}
		return "", fmt.Errorf("failed to get file info for %s: %w", path, err)
	}

	if fileInfo.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}

	switch policy {
	case RejectSymlinks:
		return "", fmt.Errorf("symlinks are not allowed: %s", path)
	case ResolveSymlinks:
		resolvedPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve symlink %s: %w", path, err)
		}
		return resolvedPath, nil
	default:
		return "", fmt.Errorf("invalid symlink policy: %d", policy)
	}
}

// SafeReadFile reads a file after applying the symlink policy.
func SafeReadFile(path string, policy SymlinkPolicy) ([]byte, error) {
	resolved, err := checkSymlink(path, policy)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(resolved)
}

// SafeWriteFile writes a file after applying the symlink policy.
func SafeWriteFile(path string, data []byte, perm os.FileMode, policy SymlinkPolicy) error {
	resolved, err := checkSymlink(path, policy)
	if err != nil {
		return err
	}
	return os.WriteFile(resolved, data, perm)
}

// SanitizeArchivePath joins an archive member name onto destDir and rejects
// names that would escape it (zip-slip).
func SanitizeArchivePath(destDir, name string) (string, error) {
	if strings.Contains(name, "\x00") {
		return "", fmt.Errorf("archive member name contains NUL: %q", name)
	}

	target := filepath.Join(destDir, filepath.FromSlash(name))
	cleanedDest := filepath.Clean(destDir)
	if target != cleanedDest && !strings.HasPrefix(target, cleanedDest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive member %q escapes destination directory", name)
	}
	return target, nil
}
