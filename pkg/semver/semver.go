// Package semver implements the three-component version model and the
// carry-propagating arithmetic used to advance a release version.
package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidVersion is returned when a version string does not parse as
// three non-negative integers.
var ErrInvalidVersion = errors.New("invalid version format")

// DefaultModulus is the component ceiling at which patch overflows into
// minor and minor into major.
const DefaultModulus = 1000

// Version is a major.minor.patch triple. Components are never negative.
type Version struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// Zero is the bootstrap version for repositories with no prior release.
var Zero = Version{}

// Parse parses a version string of the form "X.Y.Z". A leading "v" and
// surrounding whitespace are tolerated.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "v")
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	var nums [3]int
	for i, part := range parts {
		// ParseUint rejects sign prefixes, so "+2" and "-2" fail here.
		n, err := strconv.ParseUint(part, 10, 63)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		nums[i] = int(n)
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// ParseOrZero parses a version string, falling back to the zero version
// when the string is empty or malformed. The fallback triggers the
// first-release bootstrap path in Advance.
func ParseOrZero(s string) Version {
	v, err := Parse(s)
	if err != nil {
		return Zero
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsZero reports whether v is the zero version 0.0.0.
func (v Version) IsZero() bool {
	return v == Zero
}

// Add advances the patch component by delta, carrying overflow past the
// modulus into minor and from minor into major. The total patch count
// major*m*m + minor*m + patch + delta is conserved. A modulus below 2 is
// clamped to DefaultModulus.
func (v Version) Add(delta, modulus int) Version {
	if modulus < 2 {
		modulus = DefaultModulus
	}
	if delta < 0 {
		delta = 0
	}

	patchRaw := v.Patch + delta
	carryToMinor := patchRaw / modulus
	minorRaw := v.Minor + carryToMinor
	carryToMajor := minorRaw / modulus

	return Version{
		Major: v.Major + carryToMajor,
		Minor: minorRaw % modulus,
		Patch: patchRaw % modulus,
	}
}
