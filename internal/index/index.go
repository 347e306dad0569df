package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/pyforge/wheel-installer/internal/utils/logger"
	"github.com/pyforge/wheel-installer/internal/utils/network"
	"github.com/pyforge/wheel-installer/internal/wheel"
)

// ErrNotFound signals that the index has no usable metadata for the
// requested package/version. Malformed responses (HTML error pages, bad
// content types, broken JSON) collapse into this same signal; the caller
// only distinguishes "have metadata" from "don't".
var ErrNotFound = errors.New("package not found in index")

// ArtifactRecord is one published file of a release.
type ArtifactRecord struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// PackageMetadata is the index's JSON document for a package, reduced to
// the fields the pipeline needs. Read-only after Resolve returns it.
type PackageMetadata struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	Releases map[string][]ArtifactRecord `json:"releases"`
}

// Records returns the artifact records for the given version, or the
// records for the package's current version when version is empty.
func (m *PackageMetadata) Records(version string) ([]ArtifactRecord, bool) {
	if version == "" {
		version = m.Info.Version
	}
	records, ok := m.Releases[version]
	return records, ok
}

// Resolver queries a PyPI-style JSON index.
type Resolver struct {
	baseURL string
	client  *http.Client
}

// NewResolver creates a Resolver for the given index base URL. A nil
// client gets the default secure HTTP client.
func NewResolver(baseURL string, client *http.Client) *Resolver {
	if client == nil {
		client = network.NewSecureHTTPClient()
	}
	return &Resolver{baseURL: baseURL, client: client}
}

// Resolve fetches the metadata document for name (and version, when
// pinned). The index is addressed as {base}/{name}/json or
// {base}/{name}/{version}/json.
func (r *Resolver) Resolve(ctx context.Context, name, version string) (*PackageMetadata, error) {
	log := logger.Logger()

	metadataURL := r.metadataURL(name, version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, metadataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building index request for %s: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		log.Debugf("index query for %s failed: %v", name, err)
		return nil, fmt.Errorf("querying index for %s: %w", name, ErrNotFound)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debugf("index returned %s for %s", resp.Status, metadataURL)
		return nil, fmt.Errorf("index returned %s for %s: %w", resp.Status, name, ErrNotFound)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		// An HTML error page or anything else that is not a metadata
		// document is indistinguishable from an absent package.
		log.Debugf("index returned non-JSON content type %q for %s", resp.Header.Get("Content-Type"), name)
		return nil, fmt.Errorf("index returned non-JSON response for %s: %w", name, ErrNotFound)
	}

	var metadata PackageMetadata
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		log.Debugf("decoding metadata for %s failed: %v", name, err)
		return nil, fmt.Errorf("decoding metadata for %s: %w", name, ErrNotFound)
	}

	return &metadata, nil
}

func (r *Resolver) metadataURL(name, version string) string {
	base := r.baseURL + "/" + url.PathEscape(wheel.NormalizeName(name))
	if version != "" {
		base += "/" + url.PathEscape(version)
	}
	return base + "/json"
}
