package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/pyforge/wheel-installer/internal/utils/logger"
	"github.com/pyforge/wheel-installer/internal/utils/network"
)

// TransportError describes a failed artifact download: a network-level
// failure, a non-success status, or a local write failure.
type TransportError struct {
	URL    string
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("downloading %s: %s: %v", e.URL, e.Detail, e.Err)
	}
	return fmt.Sprintf("downloading %s: %s", e.URL, e.Detail)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Fetcher streams artifact content to local files.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher. A nil client gets the default secure HTTP client.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = network.NewSecureHTTPClient()
	}
	return &Fetcher{client: client}
}

// Fetch downloads url into destPath, overwriting any existing content.
// Every failure surfaces as a *TransportError; partial files are removed.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) error {
	log := logger.Logger()
	log.Infof("Downloading %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &TransportError{URL: url, Detail: "building request", Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return &TransportError{URL: url, Detail: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &TransportError{URL: url, Detail: fmt.Sprintf("bad status: %s", resp.Status)}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return &TransportError{URL: url, Detail: "creating destination file", Err: err}
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(destPath)
		return &TransportError{URL: url, Detail: "writing response body", Err: err}
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(destPath)
		return &TransportError{URL: url, Detail: "closing destination file", Err: err}
	}

	log.Infof("Downloaded %s -> %s", url, destPath)
	return nil
}
