package wheel

import (
	"fmt"
	"strings"
)

// Suffix is the filename extension of a binary wheel artifact. Anything
// else in a release file list (sdists, eggs, signatures) is not a
// candidate for installation.
const Suffix = ".whl"

// Descriptor is a parsed wheel filename. Wheel names follow
// {distribution}-{version}(-{build})?-{python}-{abi}-{platform}.whl,
// where each of the three compatibility fields may be a dot-compressed
// set of tags (e.g. "py2.py3").
type Descriptor struct {
	Filename     string
	Distribution string
	Version      string
	Build        string
	PythonTags   []string
	ABITags      []string
	PlatformTags []string
}

// ParseFilename parses a wheel filename into a Descriptor. Filenames that
// do not carry the wheel suffix or do not split into the expected field
// structure are rejected; callers treat that as "not a candidate" rather
// than an error worth surfacing.
func ParseFilename(name string) (*Descriptor, error) {
	if !strings.HasSuffix(name, Suffix) {
		return nil, fmt.Errorf("%q is not a wheel filename", name)
	}

	stem := strings.TrimSuffix(name, Suffix)
	fields := strings.Split(stem, "-")
	if len(fields) != 5 && len(fields) != 6 {
		return nil, fmt.Errorf("wheel filename %q has %d fields, want 5 or 6", name, len(fields))
	}

	d := &Descriptor{
		Filename:     name,
		Distribution: fields[0],
		Version:      fields[1],
	}

	tagFields := fields[2:]
	if len(fields) == 6 {
		d.Build = fields[2]
		tagFields = fields[3:]
	}

	d.PythonTags = splitTagSet(tagFields[0])
	d.ABITags = splitTagSet(tagFields[1])
	d.PlatformTags = splitTagSet(tagFields[2])

	if d.Distribution == "" || d.Version == "" ||
		len(d.PythonTags) == 0 || len(d.ABITags) == 0 || len(d.PlatformTags) == 0 {
		return nil, fmt.Errorf("wheel filename %q has empty fields", name)
	}

	return d, nil
}

// splitTagSet expands a dot-compressed tag field; empty components are
// dropped so "py2..py3" cannot smuggle an empty tag through.
func splitTagSet(field string) []string {
	parts := strings.Split(field, ".")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeName lowercases a distribution name and collapses runs of
// "-", "_" and "." into a single "-", per the index naming convention.
func NormalizeName(name string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(name) {
		if r == '-' || r == '_' || r == '.' {
			if !lastDash {
				b.WriteByte('-')
			}
			lastDash = true
			continue
		}
		lastDash = false
		b.WriteRune(r)
	}
	return b.String()
}
