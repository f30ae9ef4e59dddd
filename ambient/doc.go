// Package ambient models the process-wide current ruleset and mod selection
// and lets the cache watch it for changes.
package ambient
