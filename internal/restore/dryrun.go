package restore

import (
	"context"

	"github.com/Iron-Ham/tmux-layout/internal/topology"
)

// DryRun is a Multiplexer that reads from a real multiplexer but only
// records creations. Sessions it has pretended to create are reported as
// existing, so a plan made through DryRun matches a real run.
type DryRun struct {
	mux     Multiplexer
	created map[string]bool
	planned []Action
}

// NewDryRun wraps mux. mux is only ever asked to read.
func NewDryRun(mux Multiplexer) *DryRun {
	return &DryRun{
		mux:     mux,
		created: make(map[string]bool),
	}
}

// ListWindows delegates to the wrapped multiplexer.
func (d *DryRun) ListWindows(ctx context.Context) (topology.Topology, error) {
	return d.mux.ListWindows(ctx)
}

// HasSession reports sessions created during the dry run as present.
func (d *DryRun) HasSession(ctx context.Context, name string) (bool, error) {
	if d.created[name] {
		return true, nil
	}
	return d.mux.HasSession(ctx, name)
}

// NewSession records the creation without performing it.
func (d *DryRun) NewSession(_ context.Context, session, window, dir string) error {
	d.created[session] = true
	d.planned = append(d.planned, Action{
		Kind:   CreateSession,
		Record: topology.Record{Session: session, Window: window, Directory: dir},
	})
	return nil
}

// NewWindow records the creation without performing it.
func (d *DryRun) NewWindow(_ context.Context, session, window, dir string) error {
	d.planned = append(d.planned, Action{
		Kind:   CreateWindow,
		Record: topology.Record{Session: session, Window: window, Directory: dir},
	})
	return nil
}

// Planned returns the creations recorded so far.
func (d *DryRun) Planned() []Action {
	return d.planned
}
