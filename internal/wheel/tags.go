package wheel

import (
	"fmt"
	"runtime"
	"strings"
)

// Tag is one acceptable (python, abi, platform) triple of the local
// environment. The literal "any" acts as a wildcard in any position.
type Tag struct {
	Python   string
	ABI      string
	Platform string
}

func (t Tag) String() string {
	return t.Python + "-" + t.ABI + "-" + t.Platform
}

// Environment holds the ordered list of tag triples the local environment
// accepts, most preferred first. It is built once at startup and is
// immutable afterwards, so concurrent pipelines can share it freely.
type Environment struct {
	tags []Tag
}

// NewEnvironment builds the acceptable tag list for a target interpreter
// version like "3.11". platforms overrides the platform tag list; when
// empty, DefaultPlatforms for the current OS/arch is used.
func NewEnvironment(pythonVersion string, platforms []string) (*Environment, error) {
	major, minor, ok := strings.Cut(pythonVersion, ".")
	if !ok || major == "" || minor == "" {
		return nil, fmt.Errorf("invalid python version %q, expected MAJOR.MINOR", pythonVersion)
	}

	cp := "cp" + major + minor
	py := "py" + major

	if len(platforms) == 0 {
		platforms = DefaultPlatforms(runtime.GOOS, runtime.GOARCH)
	}

	var tags []Tag
	for _, plat := range platforms {
		tags = append(tags, Tag{cp, cp, plat})
	}
	for _, plat := range platforms {
		tags = append(tags, Tag{cp, "abi3", plat})
	}
	for _, plat := range platforms {
		tags = append(tags, Tag{cp, "none", plat})
	}
	for _, plat := range platforms {
		tags = append(tags, Tag{py, "none", plat})
	}
	tags = append(tags,
		Tag{cp, "none", "any"},
		Tag{py, "none", "any"},
	)

	return &Environment{tags: tags}, nil
}

// Tags returns the ordered acceptable triples, most preferred first.
func (e *Environment) Tags() []Tag {
	return e.tags
}

// Rank returns the position of the first acceptable triple the descriptor
// satisfies, or -1 when the wheel is not installable in this environment.
// Lower is better.
func (e *Environment) Rank(d *Descriptor) int {
	for i, t := range e.tags {
		if matchesField(d.PythonTags, t.Python) &&
			matchesField(d.ABITags, t.ABI) &&
			matchesField(d.PlatformTags, t.Platform) {
			return i
		}
	}
	return -1
}

// matchesField reports whether any tag in the wheel's set matches the
// environment tag, with "any" wild on either side.
func matchesField(wheelTags []string, envTag string) bool {
	if envTag == "any" {
		return true
	}
	for _, wt := range wheelTags {
		if wt == envTag || wt == "any" {
			return true
		}
	}
	return false
}

// DefaultPlatforms maps a GOOS/GOARCH pair to the wheel platform tags the
// host can run, most specific first.
func DefaultPlatforms(goos, goarch string) []string {
	switch goos {
	case "linux":
		switch goarch {
		case "amd64":
			return []string{
				"manylinux_2_17_x86_64",
				"manylinux2014_x86_64",
				"manylinux2010_x86_64",
				"manylinux1_x86_64",
				"linux_x86_64",
			}
		case "arm64":
			return []string{
				"manylinux_2_17_aarch64",
				"manylinux2014_aarch64",
				"linux_aarch64",
			}
		case "386":
			return []string{
				"manylinux1_i686",
				"linux_i686",
			}
		}
		return []string{"linux_" + goarch}
	case "darwin":
		if goarch == "arm64" {
			return []string{
				"macosx_11_0_arm64",
				"macosx_10_9_universal2",
			}
		}
		return []string{
			"macosx_10_9_x86_64",
			"macosx_10_9_intel",
		}
	case "windows":
		if goarch == "386" {
			return []string{"win32"}
		}
		return []string{"win_" + goarch}
	}
	return []string{goos + "_" + goarch}
}
