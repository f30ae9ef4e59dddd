// Package cache is the public surface of the rating cache: synchronous and
// asynchronous lookup-or-compute, live tracked ratings that follow ambient
// ruleset/mod changes, and the bounded fallback chain for incompatible
// rulesets.
//
// The façade composes the leaf packages: store holds computed ratings,
// worker serializes calculator runs on a single lane, runloop confines all
// tracked-value mutation to one goroutine, and ambient supplies the
// process-wide ruleset/mod selection.
//
// Every public operation is total over well-formed inputs: failures are
// absorbed into degraded ratings (nil Attributes), never returned as errors.
package cache
