package restore

import (
	"context"

	"github.com/Iron-Ham/tmux-layout/internal/topology"
)

// Multiplexer is the subset of tmux the Engine needs.
type Multiplexer interface {
	ListWindows(ctx context.Context) (topology.Topology, error)
	HasSession(ctx context.Context, name string) (bool, error)
	NewSession(ctx context.Context, session, window, dir string) error
	NewWindow(ctx context.Context, session, window, dir string) error
}

// Source supplies the saved topology to restore.
type Source interface {
	ReadSaved() (topology.Topology, error)
}

// ActionKind identifies a creation performed during a restore.
type ActionKind int

const (
	// CreateSession creates a session whose first window satisfies the record.
	CreateSession ActionKind = iota
	// CreateWindow adds the record's window to an existing session.
	CreateWindow
)

// String returns the kind in the form used by reports and logs.
func (k ActionKind) String() string {
	switch k {
	case CreateSession:
		return "create-session"
	case CreateWindow:
		return "create-window"
	default:
		return "unknown"
	}
}

// Action is one creation call issued (or planned) by the Engine.
type Action struct {
	Kind   ActionKind
	Record topology.Record
}

// Result summarizes a reconciliation.
type Result struct {
	// Actions lists creations in the order they were issued.
	Actions []Action
	// Skipped counts target records already present in the live layout.
	Skipped int
}

// SessionsCreated returns the number of CreateSession actions.
func (r Result) SessionsCreated() int {
	return r.count(CreateSession)
}

// WindowsCreated returns the number of CreateWindow actions.
func (r Result) WindowsCreated() int {
	return r.count(CreateWindow)
}

// Empty reports whether the reconciliation had nothing to do.
func (r Result) Empty() bool {
	return len(r.Actions) == 0
}

func (r Result) count(kind ActionKind) int {
	n := 0
	for _, a := range r.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}
