package reqfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pyforge/wheel-installer/internal/pipeline"
)

// DefaultPath is used when no requirements file argument is given.
const DefaultPath = "requirements.txt"

// Parse reads requirements from r, one per line in the form "name" or
// "name==version", with surrounding whitespace trimmed. Blank lines and
// lines starting with '#' are skipped; a line with an empty name is a
// validation error rather than a requirement for the empty package.
func Parse(r io.Reader) ([]pipeline.Requirement, error) {
	var reqs []pipeline.Requirement

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, version, _ := strings.Cut(line, "==")
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if name == "" {
			return nil, fmt.Errorf("line %d: requirement has no package name: %q", lineNo, line)
		}
		if strings.Contains(version, "==") {
			return nil, fmt.Errorf("line %d: malformed requirement: %q", lineNo, line)
		}

		reqs = append(reqs, pipeline.Requirement{Name: name, Version: version})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading requirements: %w", err)
	}

	return reqs, nil
}

// Load parses the requirements file at path.
func Load(path string) ([]pipeline.Requirement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening requirements file %s: %w", path, err)
	}
	defer f.Close()

	reqs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return reqs, nil
}
