package reqfile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pyforge/wheel-installer/internal/pipeline"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    []pipeline.Requirement
		expectError bool
	}{
		{
			name:  "plain names",
			input: "requests\nflask\n",
			expected: []pipeline.Requirement{
				{Name: "requests"},
				{Name: "flask"},
			},
		},
		{
			name:  "pinned versions",
			input: "requests==2.31.0\nflask\n",
			expected: []pipeline.Requirement{
				{Name: "requests", Version: "2.31.0"},
				{Name: "flask"},
			},
		},
		{
			name:  "blank lines and comments skipped",
			input: "\n# tooling\nrequests\n\n  # pinned\nflask==3.0.0\n",
			expected: []pipeline.Requirement{
				{Name: "requests"},
				{Name: "flask", Version: "3.0.0"},
			},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  requests == 2.31.0  \n",
			expected: []pipeline.Requirement{
				{Name: "requests", Version: "2.31.0"},
			},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:        "empty name before pin",
			input:       "==1.0\n",
			expectError: true,
		},
		{
			name:        "repeated separator",
			input:       "requests==1.0==2.0\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Parse = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requirements.txt")
	content := "requests==2.31.0\n# dev only\nflask\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing requirements file: %v", err)
	}

	reqs, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("Expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].String() != "requests==2.31.0" || reqs[1].String() != "flask" {
		t.Errorf("Load = %+v", reqs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("Expected error for missing file but got none")
	}
}
