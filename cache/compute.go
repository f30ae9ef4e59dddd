package cache

import (
	"context"
	"errors"
	"time"

	"github.com/jonwraymond/starcache/observe"
	"github.com/jonwraymond/starcache/rating"
)

// compute runs the calculator for key and commits the outcome to the store.
//
// Fallback chain on rating.ErrRulesetIncompatible:
//   - at the chart's own default ruleset this is a contradiction; a zero
//     degraded rating is stored under key and returned, with no recursion.
//   - at any other ruleset, the request re-resolves to (default ruleset, no
//     mods): an existing entry for that derived key is returned as-is,
//     otherwise compute recurses exactly once with the derived key. The
//     recursion lands in the contradiction branch if it fails again, so
//     depth is bounded to one.
//
// Any other calculator error becomes a terminal zero degraded rating under
// key. Unavailable chart content yields the chart's estimate and stores
// nothing.
func (c *Cache) compute(ctx context.Context, key rating.Key, chart rating.Chart, ruleset rating.RulesetID, mods []rating.Mod) rating.Rating {
	data, err := c.charts.Load(ctx, chart)
	if err != nil {
		c.log.Debug(ctx, "chart content unavailable, using estimate",
			observe.Field{Key: "key", Value: key.String()},
			observe.Field{Key: "error", Value: err.Error()},
		)
		return rating.FromEstimate(chart.EstimatedStars, chart.EstimatedMaxCombo)
	}

	start := time.Now()
	attrs, err := c.calc.Calculate(ctx, data, ruleset, mods)

	switch {
	case err == nil:
		c.metrics.RecordCompute(ctx, observe.ComputeOK, time.Since(start))
		return c.store.Put(key, rating.FromAttributes(attrs))

	case errors.Is(err, rating.ErrRulesetIncompatible):
		if ruleset == chart.DefaultRuleset || chart.DefaultRuleset.Unset() {
			// Self-conversion failure: the chart's own ruleset rejected its
			// content. Terminal by construction; must never recurse.
			c.metrics.RecordCompute(ctx, observe.ComputeContradicted, time.Since(start))
			c.log.Error(ctx, "default ruleset rejected its own chart",
				observe.Field{Key: "key", Value: key.String()},
				observe.Field{Key: "ruleset", Value: int(ruleset)},
			)
			return c.store.Put(key, rating.Rating{})
		}

		c.metrics.RecordCompute(ctx, observe.ComputeFallback, time.Since(start))
		c.log.Debug(ctx, "ruleset incompatible, retrying at chart default",
			observe.Field{Key: "key", Value: key.String()},
			observe.Field{Key: "default_ruleset", Value: int(chart.DefaultRuleset)},
		)

		derived := rating.NewKey(chart.ID, chart.DefaultRuleset)
		if r, ok := c.store.Get(derived); ok {
			return r
		}
		return c.compute(ctx, derived, chart, chart.DefaultRuleset, nil)

	default:
		c.metrics.RecordCompute(ctx, observe.ComputeFailed, time.Since(start))
		c.log.Warn(ctx, "calculator failed, storing degraded rating",
			observe.Field{Key: "key", Value: key.String()},
			observe.Field{Key: "error", Value: err.Error()},
		)
		return c.store.Put(key, rating.Rating{})
	}
}
