package rating

import (
	"fmt"
	"sort"
	"strings"
)

// Key identifies one rating computation: a chart, the ruleset it is rated
// under, and the set of mods applied.
//
// Contract:
// - Identity: two Keys built from the same chart, ruleset, and mod multiset
//   are equal regardless of the order mods were supplied in.
// - Comparability: Key is a comparable value type and is usable directly as
//   a map key; equality and hashing are Go-native.
type Key struct {
	ChartID int64
	Ruleset RulesetID

	// mods holds the canonical sorted join of mod acronyms so that Key stays
	// comparable. Populated only through NewKey.
	mods string
}

// NewKey builds a canonical Key. Mods are deduplicated by acronym and sorted
// before being folded into the key, so input order never affects identity.
// Acronyms that are empty or contain a comma are ignored.
func NewKey(chartID int64, ruleset RulesetID, mods ...Mod) Key {
	return Key{
		ChartID: chartID,
		Ruleset: ruleset,
		mods:    canonicalMods(mods),
	}
}

// Mods returns the canonicalized mod list, sorted by acronym.
func (k Key) Mods() []Mod {
	if k.mods == "" {
		return nil
	}
	parts := strings.Split(k.mods, modSeparator)
	mods := make([]Mod, len(parts))
	for i, p := range parts {
		mods[i] = Mod(p)
	}
	return mods
}

// String renders the key in the form "chart/ruleset[+mods]".
func (k Key) String() string {
	if k.mods == "" {
		return fmt.Sprintf("%d/%d", k.ChartID, k.Ruleset)
	}
	return fmt.Sprintf("%d/%d+%s", k.ChartID, k.Ruleset, k.mods)
}

const modSeparator = ","

// canonicalMods sorts and deduplicates mod acronyms into a stable string.
func canonicalMods(mods []Mod) string {
	if len(mods) == 0 {
		return ""
	}
	acronyms := make([]string, 0, len(mods))
	seen := make(map[string]struct{}, len(mods))
	for _, m := range mods {
		a := string(m)
		// Empty acronyms carry no identity; separator-bearing ones cannot
		// round-trip through the canonical join and would collide distinct
		// mod sets.
		if a == "" || strings.Contains(a, modSeparator) {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		acronyms = append(acronyms, a)
	}
	sort.Strings(acronyms)
	return strings.Join(acronyms, modSeparator)
}
