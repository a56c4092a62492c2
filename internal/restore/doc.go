// Package restore reconciles a live tmux layout with a saved one.
//
// Restore is additive. The Engine computes how many copies of each saved
// (session, window, directory) record are missing from the live layout and
// creates exactly that many: a new session when the session is absent, a new
// window otherwise. Nothing is ever renamed, moved, or deleted, so running a
// restore against an already restored layout issues no tmux calls beyond the
// initial reads.
//
// The Engine talks to tmux only through the Multiplexer interface. DryRun
// wraps a Multiplexer so planning runs against live state while creations are
// recorded instead of executed.
package restore
