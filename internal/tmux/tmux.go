// Package tmux builds tmux invocations and implements the layout operations
// tmux-layout needs on top of the tmux command line: enumerating windows and
// sessions, creating sessions and windows, and showing status messages.
//
// Commands run against the user's default tmux server unless a socket name is
// configured, in which case every invocation is prefixed with "-L <socket>".
package tmux

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// DefaultBinary is the tmux executable looked up on PATH.
const DefaultBinary = "tmux"

// DefaultCommandTimeout bounds a single tmux invocation.
const DefaultCommandTimeout = 5 * time.Second

// WindowFormat makes list-windows print one encoded topology record per window.
const WindowFormat = "#{session_name};#{window_name};#{pane_current_path}"

// SessionFormat makes list-sessions print one session name per line.
const SessionFormat = "#{session_name}"

// Options selects the tmux binary and server.
type Options struct {
	// Binary is the tmux executable (default "tmux").
	Binary string
	// Socket is passed as -L when non-empty.
	Socket string
	// Timeout bounds each invocation; zero means DefaultCommandTimeout.
	Timeout time.Duration
	// SkipMalformed makes ListWindows drop live windows whose names contain
	// the record delimiter, logging each at WARN, instead of failing.
	SkipMalformed bool
}

// withDefaults fills in zero-valued options.
func (o Options) withDefaults() Options {
	if o.Binary == "" {
		o.Binary = DefaultBinary
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultCommandTimeout
	}
	return o
}

// BaseArgs returns the socket arguments [-L, socket], or nil for the default server.
func BaseArgs(socket string) []string {
	if socket == "" {
		return nil
	}
	return []string{"-L", socket}
}

// CommandArgs returns the full argument list for a tmux subcommand,
// including socket selection.
func CommandArgs(socket string, args ...string) []string {
	return append(BaseArgs(socket), args...)
}

// CommandContext creates a context-aware exec.Cmd for tmux.
func CommandContext(ctx context.Context, opts Options, args ...string) *exec.Cmd {
	opts = opts.withDefaults()
	return exec.CommandContext(ctx, opts.Binary, CommandArgs(opts.Socket, args...)...)
}

// isNoServer reports whether tmux stderr means there is nothing to list:
// the server is not running or has no sessions.
func isNoServer(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "no server running") ||
		strings.Contains(s, "no sessions") ||
		strings.Contains(s, "error connecting to")
}

// ExactTarget returns a target that matches the session name exactly rather
// than by prefix.
func ExactTarget(session string) string {
	return "=" + session
}

// WindowTarget addresses the next free window index in session.
func WindowTarget(session string) string {
	return ExactTarget(session) + ":"
}
