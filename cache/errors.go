package cache

import "errors"

var (
	// ErrNoChartSource indicates a Cache was constructed without a chart
	// data source.
	ErrNoChartSource = errors.New("cache: chart source is required")

	// ErrNoCalculator indicates a Cache was constructed without a
	// calculator.
	ErrNoCalculator = errors.New("cache: calculator is required")
)
