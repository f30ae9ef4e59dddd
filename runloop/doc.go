// Package runloop provides the single designated delivery goroutine on which
// all tracked-rating mutations are applied.
//
// Observers that read tracked values must do so from tasks posted to the same
// loop; the loop is the only synchronization point protecting those values.
package runloop
