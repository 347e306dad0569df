package index

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pkg/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"info": {"version": "1.0"},
				"releases": {
					"1.0": [{"filename": "pkg-1.0-py3-none-any.whl", "url": "http://x/pkg.whl"}],
					"0.9": [{"filename": "pkg-0.9-py3-none-any.whl", "url": "http://x/pkg-0.9.whl"}]
				}
			}`))
		case "/pkg/0.9/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"info": {"version": "0.9"},
				"releases": {
					"0.9": [{"filename": "pkg-0.9-py3-none-any.whl", "url": "http://x/pkg-0.9.whl"}]
				}
			}`))
		case "/htmlerror/json":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Not what you wanted</body></html>"))
		case "/brokenjson/json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not json"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	tests := []struct {
		name            string
		pkg             string
		version         string
		expectNotFound  bool
		expectedVersion string
	}{
		{
			name:            "package found",
			pkg:             "pkg",
			expectedVersion: "1.0",
		},
		{
			name:            "pinned version found",
			pkg:             "pkg",
			version:         "0.9",
			expectedVersion: "0.9",
		},
		{
			name:           "package absent",
			pkg:            "ghost",
			expectNotFound: true,
		},
		{
			name:           "html error page",
			pkg:            "htmlerror",
			expectNotFound: true,
		},
		{
			name:           "broken json body",
			pkg:            "brokenjson",
			expectNotFound: true,
		},
	}

	resolver := NewResolver(server.URL, server.Client())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata, err := resolver.Resolve(context.Background(), tt.pkg, tt.version)

			if tt.expectNotFound {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Expected ErrNotFound, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error but got: %v", err)
			}
			if metadata.Info.Version != tt.expectedVersion {
				t.Errorf("Expected version %s, got %s", tt.expectedVersion, metadata.Info.Version)
			}
		})
	}
}

func TestResolveUnreachableIndex(t *testing.T) {
	resolver := NewResolver("http://127.0.0.1:1/unreachable", nil)

	_, err := resolver.Resolve(context.Background(), "pkg", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unreachable index, got %v", err)
	}
}

func TestResolveNormalizesName(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"info": {"version": "1.0"}, "releases": {}}`))
	}))
	defer server.Close()

	resolver := NewResolver(server.URL, server.Client())
	if _, err := resolver.Resolve(context.Background(), "Typing_Extensions", ""); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if requestedPath != "/typing-extensions/json" {
		t.Errorf("Expected normalized path /typing-extensions/json, got %s", requestedPath)
	}
}

func TestRecords(t *testing.T) {
	metadata := &PackageMetadata{
		Releases: map[string][]ArtifactRecord{
			"1.0": {{Filename: "pkg-1.0-py3-none-any.whl", URL: "http://x/a"}},
			"2.0": {{Filename: "pkg-2.0-py3-none-any.whl", URL: "http://x/b"}},
		},
	}
	metadata.Info.Version = "2.0"

	tests := []struct {
		name     string
		version  string
		expectOK bool
		filename string
	}{
		{"explicit version", "1.0", true, "pkg-1.0-py3-none-any.whl"},
		{"current version when unpinned", "", true, "pkg-2.0-py3-none-any.whl"},
		{"absent version", "9.9", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, ok := metadata.Records(tt.version)
			if ok != tt.expectOK {
				t.Fatalf("Records ok = %v, want %v", ok, tt.expectOK)
			}
			if !ok {
				return
			}
			if len(records) != 1 || records[0].Filename != tt.filename {
				t.Errorf("Records = %+v, want one record %s", records, tt.filename)
			}
		})
	}
}
