package layout

import (
	"context"

	"github.com/Iron-Ham/tmux-layout/internal/errors"
	"github.com/Iron-Ham/tmux-layout/internal/topology"
)

// Lister enumerates every window of every live session.
type Lister interface {
	ListWindows(ctx context.Context) (topology.Topology, error)
}

// ReadLive returns the live topology. A multiplexer with no sessions yields
// an empty, non-nil topology.
func ReadLive(ctx context.Context, lister Lister) (topology.Topology, error) {
	live, err := lister.ListWindows(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read live layout")
	}
	if live == nil {
		live = topology.Topology{}
	}
	return live, nil
}

// Save reads the live topology and writes it to store. The written topology
// is returned for reporting.
func Save(ctx context.Context, lister Lister, store *Store) (topology.Topology, error) {
	live, err := ReadLive(ctx, lister)
	if err != nil {
		return nil, err
	}
	if err := store.Write(live); err != nil {
		return nil, err
	}
	return live, nil
}
