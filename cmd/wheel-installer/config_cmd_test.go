package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pyforge/wheel-installer/internal/config"
)

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel-installer.yml")

	cmd := createConfigCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if !strings.Contains(out.String(), "Configuration file created at:") {
		t.Errorf("expected creation message, got:\n%s", out.String())
	}

	// The generated file must load back cleanly.
	if _, err := config.LoadGlobalConfig(path); err != nil {
		t.Errorf("generated config does not load: %v", err)
	}
}

func TestConfigShowCommand(t *testing.T) {
	config.SetGlobal(config.DefaultGlobalConfig())

	cmd := createConfigCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"show"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	for _, want := range []string{"workers:", "index_url:", "cache_dir:", "target_dir:", "python_version:", "logging.level:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}
