// Package version provides the tempo release version and version parsing.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the release version of this module.
const Current = "0.1.0"

// Release represents a parsed "major.minor.patch" version.
type Release struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor.patch" version string.
func Parse(s string) (Release, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Release{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	fields := make([]uint16, 3)
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 10, 16)
		if err != nil || part == "" {
			return Release{}, fmt.Errorf("invalid version %q: bad component %q", s, part)
		}
		fields[i] = uint16(v)
	}

	return Release{Major: fields[0], Minor: fields[1], Patch: fields[2]}, nil
}

// String returns the version as "major.minor.patch".
func (r Release) String() string {
	return fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Patch)
}

// Compatible returns true if the other release has the same major version.
func (r Release) Compatible(other Release) bool {
	return r.Major == other.Major
}

// Cmp returns -1, 0 or 1 ordering two releases.
func (r Release) Cmp(other Release) int {
	pairs := [][2]uint16{
		{r.Major, other.Major},
		{r.Minor, other.Minor},
		{r.Patch, other.Patch},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}
