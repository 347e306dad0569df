package security

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestValidateString(t *testing.T) {
	lim := DefaultLimits()

	tests := []struct {
		name        string
		value       string
		expectError bool
	}{
		{"empty string", "", false},
		{"plain value", "requests==2.31.0", false},
		{"nul byte", "requests\x00", true},
		{"invalid utf-8", string([]byte{0xff, 0xfe}), true},
		{"control rune", "requests\x07", true},
		{"too long", strings.Repeat("a", lim.MaxString+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateString("value", tt.value, lim)
			if tt.expectError && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestAttachRecursiveRejectsBadFlag(t *testing.T) {
	var dir string
	sub := &cobra.Command{
		Use:  "sub",
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	sub.Flags().StringVar(&dir, "cache-dir", "", "")

	root := &cobra.Command{Use: "root"}
	root.AddCommand(sub)
	AttachRecursive(root, DefaultLimits())

	root.SetArgs([]string{"sub", "--cache-dir", "cache\x00dir"})
	if err := root.Execute(); err == nil {
		t.Error("Expected validation error for flag with NUL byte")
	}

	root.SetArgs([]string{"sub", "--cache-dir", "./cache"})
	if err := root.Execute(); err != nil {
		t.Errorf("Expected clean flag value to pass, got: %v", err)
	}
}
