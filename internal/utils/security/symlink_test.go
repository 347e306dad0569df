package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeArchivePath(t *testing.T) {
	destDir := filepath.Join("/opt", "site-packages")

	tests := []struct {
		name        string
		member      string
		expectError bool
	}{
		{"plain file", "pkg/__init__.py", false},
		{"nested file", "pkg/sub/mod.py", false},
		{"dot segments collapsing inside", "pkg/./mod.py", false},
		{"parent escape", "../evil.py", true},
		{"deep parent escape", "pkg/../../evil.py", true},
		{"absolute-looking name stays inside", "/etc/passwd", false},
		{"nul byte", "pkg/\x00evil.py", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeArchivePath(destDir, tt.member)

			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error but got path %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			rel, err := filepath.Rel(destDir, got)
			if err != nil || rel == ".." || filepath.IsAbs(rel) {
				t.Errorf("Sanitized path %q is outside %q", got, destDir)
			}
		})
	}
}

func TestSafeReadFileRejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	if err := os.WriteFile(target, []byte("secret"), 0o644); err != nil {
		t.Fatalf("writing target file: %v", err)
	}
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	if _, err := SafeReadFile(link, RejectSymlinks); err == nil {
		t.Error("Expected error reading symlink with RejectSymlinks policy")
	}

	data, err := SafeReadFile(link, ResolveSymlinks)
	if err != nil {
		t.Fatalf("SafeReadFile with ResolveSymlinks failed: %v", err)
	}
	if string(data) != "secret" {
		t.Errorf("SafeReadFile = %q, want %q", data, "secret")
	}
}

func TestSafeWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := SafeWriteFile(path, []byte("content"), 0o600, RejectSymlinks); err != nil {
		t.Fatalf("SafeWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("Written content = %q", data)
	}
}
