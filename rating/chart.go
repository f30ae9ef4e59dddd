package rating

// Chart describes one playable chart as known to the catalogue.
//
// A zero ID means the chart is not locally resolvable: the cache will answer
// with a degraded estimate and never store or compute for it.
type Chart struct {
	ID   int64
	Name string

	// DefaultRuleset is the ruleset the chart was authored for. Requests
	// without an explicit ruleset resolve to it, and it anchors the fallback
	// chain when another ruleset turns out to be incompatible.
	DefaultRuleset RulesetID

	// EstimatedStars and EstimatedMaxCombo are the externally supplied best
	// estimates used when no local computation is possible.
	EstimatedStars    float64
	EstimatedMaxCombo int
}

// Resolvable reports whether the chart can be computed locally.
func (c Chart) Resolvable() bool { return c.ID != 0 }

// ChartData is the fully loaded chart content consumed by a Calculator. The
// cache treats it as opaque; only the calculator that produced the contract
// interprets it.
type ChartData interface{}
