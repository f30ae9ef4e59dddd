package rating

// Tier is a named difficulty band derived from a star score.
type Tier int

const (
	// TierEasy covers scores below the first cutoff.
	TierEasy Tier = iota
	TierNormal
	TierHard
	TierExpert
	TierInsane
	TierExtreme
)

// String returns the display name of the tier.
func (t Tier) String() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierNormal:
		return "Normal"
	case TierHard:
		return "Hard"
	case TierExpert:
		return "Expert"
	case TierInsane:
		return "Insane"
	case TierExtreme:
		return "Extreme"
	default:
		return "Unknown"
	}
}

// tierCutoffs are the ascending star thresholds between tiers. A score at or
// almost at a cutoff belongs to the higher tier.
var tierCutoffs = [...]float64{2.0, 2.7, 4.0, 5.3, 6.5}

// tierEpsilon absorbs floating-point noise around a cutoff so that a score
// an ulp or two below the threshold still lands in the higher tier.
const tierEpsilon = 1e-6

// TierFor classifies a star score into a Tier using epsilon-tolerant
// greater-or-equal comparisons against the fixed cutoff list.
func TierFor(stars float64) Tier {
	tier := TierEasy
	for _, cutoff := range tierCutoffs {
		if !almostGTE(stars, cutoff) {
			break
		}
		tier++
	}
	return tier
}

// almostGTE reports a >= b within tierEpsilon tolerance.
func almostGTE(a, b float64) bool {
	return a >= b-tierEpsilon
}
