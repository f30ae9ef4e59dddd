package rating

import "errors"

// Sentinel errors returned by the cache's collaborators.
var (
	// ErrRulesetIncompatible is returned by a Calculator when the requested
	// ruleset cannot represent the chart's content.
	ErrRulesetIncompatible = errors.New("rating: ruleset cannot represent this chart")

	// ErrChartUnavailable is returned by a ChartSource when the chart's heavy
	// data is not locally available.
	ErrChartUnavailable = errors.New("rating: chart data is not locally available")
)
