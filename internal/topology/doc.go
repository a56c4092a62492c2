// Package topology models the layout of a tmux server as a sequence of
// (session, window, directory) records and converts it to and from the
// line-oriented session file format.
//
// A record encodes as its three fields joined by ";", one record per line:
//
//	dev;editor;/home/u/proj
//	dev;shell;/home/u/proj
//	ops;main;/var/ops
//
// There is no escaping. Field values must never contain the delimiter or a
// newline; Record.Validate reports values that would not survive a round trip.
//
// Order is preserved on disk so repeated saves of an unchanged layout produce
// identical files. For reconciliation a Topology is a multiset: Counts and
// Difference operate on per-record occurrence counts.
package topology
