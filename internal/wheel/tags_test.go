package wheel

import (
	"testing"
)

func TestNewEnvironment(t *testing.T) {
	tests := []struct {
		name          string
		pythonVersion string
		platforms     []string
		expectError   bool
	}{
		{
			name:          "valid version with platforms",
			pythonVersion: "3.11",
			platforms:     []string{"linux_x86_64"},
		},
		{
			name:          "valid version default platforms",
			pythonVersion: "3.9",
		},
		{
			name:          "missing minor",
			pythonVersion: "3",
			expectError:   true,
		},
		{
			name:          "empty",
			pythonVersion: "",
			expectError:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := NewEnvironment(tt.pythonVersion, tt.platforms)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if len(env.Tags()) == 0 {
				t.Error("Expected non-empty tag list")
			}
		})
	}
}

func TestEnvironmentTagOrder(t *testing.T) {
	env, err := NewEnvironment("3.11", []string{"manylinux_2_17_x86_64", "linux_x86_64"})
	if err != nil {
		t.Fatalf("NewEnvironment failed: %v", err)
	}

	tags := env.Tags()

	// Interpreter-specific tags rank ahead of generic ones, and the
	// universal py3-none-any triple comes last.
	first := tags[0]
	if first.Python != "cp311" || first.ABI != "cp311" || first.Platform != "manylinux_2_17_x86_64" {
		t.Errorf("first tag = %s, want cp311-cp311-manylinux_2_17_x86_64", first)
	}
	last := tags[len(tags)-1]
	if last.Python != "py3" || last.ABI != "none" || last.Platform != "any" {
		t.Errorf("last tag = %s, want py3-none-any", last)
	}
}

func TestEnvironmentRank(t *testing.T) {
	env, err := NewEnvironment("3.11", []string{"manylinux_2_17_x86_64", "linux_x86_64"})
	if err != nil {
		t.Fatalf("NewEnvironment failed: %v", err)
	}

	tests := []struct {
		name        string
		filename    string
		installable bool
	}{
		{"exact interpreter match", "numpy-1.26.4-cp311-cp311-manylinux_2_17_x86_64.whl", true},
		{"abi3 wheel", "cryptography-42.0.0-cp311-abi3-manylinux_2_17_x86_64.whl", true},
		{"pure python wheel", "requests-2.31.0-py3-none-any.whl", true},
		{"compressed tags", "six-1.16.0-py2.py3-none-any.whl", true},
		{"wrong interpreter", "numpy-1.26.4-cp38-cp38-manylinux_2_17_x86_64.whl", false},
		{"wrong platform", "numpy-1.26.4-cp311-cp311-win_amd64.whl", false},
		{"python 2 only", "legacy-0.1-py2-none-any.whl", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseFilename(tt.filename)
			if err != nil {
				t.Fatalf("ParseFilename failed: %v", err)
			}
			rank := env.Rank(d)
			if tt.installable && rank < 0 {
				t.Errorf("Expected %q to be installable, got rank %d", tt.filename, rank)
			}
			if !tt.installable && rank >= 0 {
				t.Errorf("Expected %q to be not installable, got rank %d", tt.filename, rank)
			}
		})
	}
}

func TestEnvironmentRankPrefersSpecific(t *testing.T) {
	env, err := NewEnvironment("3.11", []string{"manylinux_2_17_x86_64"})
	if err != nil {
		t.Fatalf("NewEnvironment failed: %v", err)
	}

	binary, _ := ParseFilename("pkg-1.0-cp311-cp311-manylinux_2_17_x86_64.whl")
	pure, _ := ParseFilename("pkg-1.0-py3-none-any.whl")

	if env.Rank(binary) >= env.Rank(pure) {
		t.Errorf("binary wheel rank %d should beat pure wheel rank %d",
			env.Rank(binary), env.Rank(pure))
	}
}

func TestDefaultPlatforms(t *testing.T) {
	tests := []struct {
		goos     string
		goarch   string
		contains string
	}{
		{"linux", "amd64", "manylinux_2_17_x86_64"},
		{"linux", "arm64", "manylinux_2_17_aarch64"},
		{"linux", "riscv64", "linux_riscv64"},
		{"darwin", "arm64", "macosx_11_0_arm64"},
		{"darwin", "amd64", "macosx_10_9_x86_64"},
		{"windows", "amd64", "win_amd64"},
		{"windows", "386", "win32"},
	}

	for _, tt := range tests {
		platforms := DefaultPlatforms(tt.goos, tt.goarch)
		if len(platforms) == 0 {
			t.Errorf("DefaultPlatforms(%s, %s) is empty", tt.goos, tt.goarch)
			continue
		}
		found := false
		for _, p := range platforms {
			if p == tt.contains {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("DefaultPlatforms(%s, %s) = %v, want it to contain %q",
				tt.goos, tt.goarch, platforms, tt.contains)
		}
	}
}
