// Package testutil provides testing utilities for tmux-layout tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// SkipIfNoTmux skips the test if tmux is not installed.
func SkipIfNoTmux(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("tmux"); err != nil {
		t.Skip("tmux not found in PATH, skipping test")
	}
}

// TmuxSocket returns a socket name for a private tmux server. The server, if
// the test starts one, is killed when the test completes.
func TmuxSocket(t *testing.T) string {
	t.Helper()

	socket := "tmux-layout-test-" + uuid.NewString()[:8]
	t.Cleanup(func() {
		// Fails harmlessly when no server was started.
		_ = exec.Command("tmux", "-L", socket, "kill-server").Run()
	})
	return socket
}

// RunTmux runs tmux against socket and returns trimmed stdout.
func RunTmux(t *testing.T, socket string, args ...string) string {
	t.Helper()

	cmd := exec.Command("tmux", append([]string{"-L", socket}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		t.Fatalf("tmux %s: %v\n%s", strings.Join(args, " "), err, stderr)
	}
	return strings.TrimSpace(string(out))
}

// WriteSessionFile writes content to a session file in a fresh temporary
// directory and returns its path.
func WriteSessionFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".tmux-session")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write session file: %v", err)
	}
	return path
}

// ReadFile returns the content of path, failing the test if it is unreadable.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
