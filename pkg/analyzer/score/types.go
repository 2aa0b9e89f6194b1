// Package score converts change signals into per-tier deltas, classifies
// the release tier, and produces the final version decision.
package score

import (
	"github.com/nextver/nextver/pkg/analyzer/signals"
)

// Tier is the granularity of version bump selected for a change set.
type Tier string

const (
	TierMajor Tier = "major"
	TierMinor Tier = "minor"
	TierPatch Tier = "patch"
	TierNone  Tier = "none"
)

func (t Tier) String() string {
	return string(t)
}

// ParseTier converts a string to a Tier.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierMajor, TierMinor, TierPatch, TierNone:
		return Tier(s), true
	}
	return "", false
}

// Breakdown is the computed score for one tier.
type Breakdown struct {
	// ScaleFactor is 1 + changedLines/divisor.
	ScaleFactor float64 `json:"scale_factor"`
	// BaseDelta is the line-count-attributable increment, always >= 1.
	BaseDelta int `json:"base_delta"`
	// TotalBonus is the rounded, scale-multiplied sum of triggered bonus
	// points.
	TotalBonus int `json:"total_bonus"`
	// TotalDelta is BaseDelta + TotalBonus.
	TotalDelta int `json:"total_delta"`
}

// Scores holds the breakdown of all three tiers.
type Scores struct {
	Patch Breakdown `json:"patch"`
	Minor Breakdown `json:"minor"`
	Major Breakdown `json:"major"`
}

// LOCDelta is the per-tier total delta summary reported in JSON output.
type LOCDelta struct {
	PatchDelta int `json:"patch_delta"`
	MinorDelta int `json:"minor_delta"`
	MajorDelta int `json:"major_delta"`
}

// Decision is the sole output of the decision engine: the selected tier,
// the scores that led to it, and the current and next versions. Field
// order is the JSON key order, which keeps repeated renderings
// byte-identical.
type Decision struct {
	Suggestion     Tier            `json:"suggestion"`
	CurrentVersion string          `json:"current_version"`
	NextVersion    string          `json:"next_version"`
	TotalBonus     int             `json:"total_bonus"`
	LOCDelta       LOCDelta        `json:"loc_delta"`
	NoChanges      bool            `json:"no_changes"`
	BaseRef        string          `json:"base_ref"`
	TargetRef      string          `json:"target_ref"`
	Signals        signals.Signals `json:"signals"`
	Scores         Scores          `json:"scores"`
}

// SelectedDelta returns the total delta of the selected tier.
func (d Decision) SelectedDelta() int {
	switch d.Suggestion {
	case TierMajor:
		return d.Scores.Major.TotalDelta
	case TierMinor:
		return d.Scores.Minor.TotalDelta
	case TierPatch:
		return d.Scores.Patch.TotalDelta
	default:
		return 0
	}
}
