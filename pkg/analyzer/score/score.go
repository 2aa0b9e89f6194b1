package score

import (
	"math"
	"sort"

	"github.com/nextver/nextver/pkg/analyzer/signals"
	"github.com/nextver/nextver/pkg/config"
)

// Calculate computes the score breakdown of every tier independently.
// Each tier applies its own scale factor to both the base delta and the
// bonus sum, so the same signal is worth more toward tiers with a larger
// divisor.
func Calculate(sig signals.Signals, tiers config.TiersConfig) Scores {
	return Scores{
		Patch: calculateTier(sig, tiers.Patch),
		Minor: calculateTier(sig, tiers.Minor),
		Major: calculateTier(sig, tiers.Major),
	}
}

func calculateTier(sig signals.Signals, tc config.TierConfig) Breakdown {
	scale := 1 + float64(sig.ChangedLines)/tc.Divisor

	base := roundHalfUp(tc.Coefficient * scale)
	if base < 1 {
		base = 1
	}

	// Bonus names are summed in sorted order; float addition is not
	// associative and map iteration order must not leak into the result.
	names := make([]string, 0, len(tc.Bonuses))
	for name := range tc.Bonuses {
		names = append(names, name)
	}
	sort.Strings(names)

	var points float64
	for _, name := range names {
		points += sig.Value(name) * tc.Bonuses[name]
	}

	bonus := roundHalfUp(scale * points)
	return Breakdown{
		ScaleFactor: scale,
		BaseDelta:   base,
		TotalBonus:  bonus,
		TotalDelta:  base + bonus,
	}
}

// roundHalfUp rounds to the nearest integer with ties rounding up.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
