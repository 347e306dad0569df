package main

import (
	"testing"
)

func TestCreateRootCommand_Wiring(t *testing.T) {
	root := createRootCommand()

	// Check global flags
	if f := root.PersistentFlags().Lookup("config"); f == nil {
		t.Fatalf("--config flag missing")
	}
	if f := root.PersistentFlags().Lookup("log-level"); f == nil {
		t.Fatalf("--log-level flag missing")
	}

	// Expected subcommands
	want := map[string]bool{
		"install":            false,
		"download":           false,
		"cache":              false,
		"config":             false,
		"version":            false,
		"install-completion": false,
	}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("expected subcommand %q to be registered", name)
		}
	}
}

func TestInstallCommandFlags(t *testing.T) {
	cmd := createInstallCommand()

	for _, flag := range []string{"workers", "cache-dir", "target-dir", "index-url", "strict"} {
		if f := cmd.Flags().Lookup(flag); f == nil {
			t.Fatalf("--%s flag missing on install command", flag)
		}
	}
}

func TestDownloadCommandFlags(t *testing.T) {
	cmd := createDownloadCommand()

	for _, flag := range []string{"workers", "cache-dir", "index-url"} {
		if f := cmd.Flags().Lookup(flag); f == nil {
			t.Fatalf("--%s flag missing on download command", flag)
		}
	}
}
