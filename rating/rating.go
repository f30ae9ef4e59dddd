package rating

// RulesetID identifies the ruleset a chart is rated under. The zero value
// means "unset"; callers must resolve an unset ruleset to the chart's default
// before building a Key.
type RulesetID int

// Unset reports whether the ruleset has no stable identity.
func (r RulesetID) Unset() bool { return r <= 0 }

// Mod is the acronym of a gameplay modifier that alters a computation's
// inputs or outputs, e.g. "DT" or "HR". Acronyms must be non-empty and must
// not contain a comma; NewKey ignores acronyms that violate this.
type Mod string

// Rating is the immutable result of one difficulty computation.
//
// A nil Attributes marks a degraded rating: the value came from a
// pre-existing estimate or a failure fallback, never from a successful
// calculator run.
type Rating struct {
	// Stars is the headline difficulty score.
	Stars float64

	// MaxCombo is the maximum achievable combo derived alongside the score.
	MaxCombo int

	// Attributes carries the calculator's rich payload. Nil on any degraded
	// path.
	Attributes *Attributes
}

// FromAttributes wraps a successful calculator result into a Rating.
func FromAttributes(attrs *Attributes) Rating {
	if attrs == nil {
		return Rating{}
	}
	return Rating{
		Stars:      attrs.Stars,
		MaxCombo:   attrs.MaxCombo,
		Attributes: attrs,
	}
}

// FromEstimate builds a degraded Rating from an externally supplied best
// estimate. Attributes stay nil.
func FromEstimate(stars float64, maxCombo int) Rating {
	return Rating{Stars: stars, MaxCombo: maxCombo}
}

// Degraded reports whether the rating came from a fallback source rather
// than a successful computation.
func (r Rating) Degraded() bool { return r.Attributes == nil }

// Tier classifies the rating's star score.
func (r Rating) Tier() Tier { return TierFor(r.Stars) }

// Attributes is the rich payload produced by a calculator. Values are
// immutable by convention once returned.
type Attributes struct {
	Stars    float64
	MaxCombo int
	Ruleset  RulesetID
	Mods     []Mod

	// Skills holds per-skill difficulty components keyed by skill name,
	// e.g. "aim" or "speed". May be empty.
	Skills map[string]float64
}
