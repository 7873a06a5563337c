// Package semver implements the three-component version scheme used in
// project manifests. Pre-release and build-metadata suffixes are not
// supported: versions are always exactly major.minor.patch.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a semantic version with exactly three components.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Kind selects which version component a bump increments.
type Kind int

const (
	Major Kind = iota
	Minor
	Patch
)

// String returns the kind name as used on the command line.
func (k Kind) String() string {
	switch k {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	default:
		return "unknown"
	}
}

// ParseKind converts a bump-type argument into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	default:
		return 0, fmt.Errorf("invalid bump type %q (expected major, minor, or patch)", s)
	}
}

// Parse converts a "major.minor.patch" string into a Version.
// It fails unless the input has exactly three non-negative integer components.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (len(p) > 1 && strings.HasPrefix(p, "0")) {
			return Version{}, fmt.Errorf("invalid version component %q in %s", p, s)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String serializes the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Tag returns the version formatted as a release tag ("v1.2.3").
func (v Version) Tag() string {
	return "v" + v.String()
}

// Bump returns the version with the selected component incremented and all
// lower-order components reset to zero.
func (v Version) Bump(kind Kind) Version {
	switch kind {
	case Major:
		return Version{Major: v.Major + 1}
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// Compare returns -1, 0, or 1 if v is less than, equal to, or greater than o
// under standard semver precedence.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		return sign(v.Major - o.Major)
	}
	if v.Minor != o.Minor {
		return sign(v.Minor - o.Minor)
	}
	return sign(v.Patch - o.Patch)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
