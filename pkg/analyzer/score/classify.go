package score

import (
	"github.com/nextver/nextver/pkg/analyzer/signals"
	"github.com/nextver/nextver/pkg/config"
	"github.com/nextver/nextver/pkg/semver"
)

// Classify selects exactly one tier, evaluated strictest to laxest.
// Classification compares bonus totals, not total deltas; the base delta
// reflects diff size alone and must not push a release across a tier bar.
// Patch is only reachable when some change was detected, so an empty diff
// classifies as none.
func Classify(sc Scores, sig signals.Signals, tiers config.TiersConfig) Tier {
	if sc.Major.TotalBonus >= tiers.Major.Threshold {
		return TierMajor
	}
	if sc.Minor.TotalBonus >= tiers.Minor.Threshold {
		return TierMinor
	}
	if sig.Any() {
		return TierPatch
	}
	return TierNone
}

// NextVersion advances the current version by the selected tier's delta.
// Tier none leaves the version untouched. A zero current version takes the
// first-release bootstrap path and returns a fixed seed per tier.
func NextVersion(current semver.Version, tier Tier, delta, modulus int) semver.Version {
	if tier == TierNone {
		return current
	}
	if current.IsZero() {
		return seedVersion(tier)
	}
	return current.Add(delta, modulus)
}

func seedVersion(tier Tier) semver.Version {
	switch tier {
	case TierMajor:
		return semver.Version{Major: 1}
	case TierMinor:
		return semver.Version{Minor: 1}
	case TierPatch:
		return semver.Version{Patch: 1}
	default:
		return semver.Zero
	}
}
