package tmux

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Iron-Ham/tmux-layout/internal/errors"
	"github.com/Iron-Ham/tmux-layout/internal/logging"
	"github.com/Iron-Ham/tmux-layout/internal/topology"
)

// Runner executes a tmux invocation and returns its captured output.
// Tests substitute a fake to avoid a live tmux server.
type Runner func(ctx context.Context, opts Options, args ...string) (stdout, stderr []byte, err error)

// execRunner runs tmux as a child process.
func execRunner(ctx context.Context, opts Options, args ...string) ([]byte, []byte, error) {
	cmd := CommandContext(ctx, opts, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Client performs layout operations against a tmux server. Every call is a
// single blocking invocation; nothing is retried.
type Client struct {
	opts   Options
	run    Runner
	logger *logging.Logger
}

// NewClient returns a Client that shells out to tmux.
func NewClient(opts Options, logger *logging.Logger) *Client {
	return NewClientWithRunner(opts, execRunner, logger)
}

// NewClientWithRunner returns a Client that executes through run.
func NewClientWithRunner(opts Options, run Runner, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Client{
		opts:   opts.withDefaults(),
		run:    run,
		logger: logger,
	}
}

// exec runs one tmux subcommand with the per-call timeout. When allowEmpty is
// set, a "no server" failure yields empty output instead of an error.
func (c *Client) exec(ctx context.Context, allowEmpty bool, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	c.logger.Debug("running tmux", "args", strings.Join(args, " "))
	stdout, stderr, err := c.run(ctx, c.opts, args...)
	if err != nil {
		if allowEmpty && isNoServer(string(stderr)) {
			c.logger.Debug("tmux server has no sessions", "stderr", strings.TrimSpace(string(stderr)))
			return "", nil
		}
		return "", errors.NewCommandError("tmux "+args[0]+" failed", err).
			WithArgs(CommandArgs(c.opts.Socket, args...)).
			WithStderr(string(stderr))
	}
	return string(stdout), nil
}

// ListWindows enumerates every window of every session as topology records.
// A server with no sessions, or no server at all, yields an empty topology.
func (c *Client) ListWindows(ctx context.Context) (topology.Topology, error) {
	out, err := c.exec(ctx, true, "list-windows", "-a", "-F", WindowFormat)
	if err != nil {
		return nil, err
	}
	if !c.opts.SkipMalformed {
		topo, err := topology.DecodeString(out)
		if err != nil {
			return nil, errors.Wrap(err, "unexpected list-windows output")
		}
		return topo, nil
	}

	var topo topology.Topology
	for i, line := range outputLines(out) {
		if line == "" {
			continue
		}
		rec, err := topology.Decode(line)
		if err != nil {
			c.logger.Warn("skipping live window that cannot be decoded",
				"line", i+1,
				"error", err.Error(),
			)
			continue
		}
		topo = append(topo, rec)
	}
	return topo, nil
}

// outputLines splits command output into lines, dropping a trailing "\r"
// from each. Leading and trailing spaces are part of tmux names and are kept.
func outputLines(out string) []string {
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ListSessions returns the names of all live sessions.
func (c *Client) ListSessions(ctx context.Context) ([]string, error) {
	out, err := c.exec(ctx, true, "list-sessions", "-F", SessionFormat)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range outputLines(out) {
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// HasSession reports whether a session with exactly this name is live.
func (c *Client) HasSession(ctx context.Context, name string) (bool, error) {
	names, err := c.ListSessions(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

// NewSession creates a detached session whose first window has the given
// name and starts in dir.
func (c *Client) NewSession(ctx context.Context, session, window, dir string) error {
	args := []string{"new-session", "-d", "-s", session, "-n", window}
	args = appendStartDir(args, dir)
	_, err := c.exec(ctx, false, args...)
	return err
}

// NewWindow adds a window to an existing session without switching to it.
func (c *Client) NewWindow(ctx context.Context, session, window, dir string) error {
	args := []string{"new-window", "-d", "-t", WindowTarget(session), "-n", window}
	args = appendStartDir(args, dir)
	_, err := c.exec(ctx, false, args...)
	return err
}

// DisplayMessage shows msg in the status line of attached clients.
func (c *Client) DisplayMessage(ctx context.Context, msg string) error {
	_, err := c.exec(ctx, false, "display-message", msg)
	return err
}

// Notify implements the notifier used by the save and restore commands.
func (c *Client) Notify(ctx context.Context, msg string) error {
	return c.DisplayMessage(ctx, msg)
}

// appendStartDir adds -c dir, expanding a leading "~" since tmux does not.
func appendStartDir(args []string, dir string) []string {
	if dir == "" {
		return args
	}
	return append(args, "-c", ExpandHome(dir))
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
