// Package rating defines the value types shared across the starcache module:
// canonical cache keys, computed ratings with optional rich attributes, chart
// descriptors, and the tier classification helper.
package rating
