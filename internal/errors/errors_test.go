package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

// -----------------------------------------------------------------------------
// Severity Tests
// -----------------------------------------------------------------------------

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// FileError Tests
// -----------------------------------------------------------------------------

func TestFileError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *FileError
		want string
	}{
		{
			name: "with path and cause",
			err:  NewFileError("cannot read saved layout", ErrFileNotFound).WithPath("/home/u/.tmux-session"),
			want: "file error [path=/home/u/.tmux-session]: cannot read saved layout: session file not found",
		},
		{
			name: "no path no cause",
			err:  NewFileError("write failed", nil),
			want: "file error: write failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileError_Is(t *testing.T) {
	err := NewFileError("cannot read saved layout", ErrFileNotFound)

	if !errors.Is(err, ErrFileNotFound) {
		t.Error("errors.Is(err, ErrFileNotFound) = false, want true")
	}
	if !errors.Is(err, &FileError{}) {
		t.Error("errors.Is(err, &FileError{}) = false, want true")
	}
	if errors.Is(err, ErrMalformedRecord) {
		t.Error("errors.Is(err, ErrMalformedRecord) = true, want false")
	}

	writeErr := NewFileError("write failed", os.ErrPermission)
	if errors.Is(writeErr, ErrFileNotFound) {
		t.Error("permission failure should not match ErrFileNotFound")
	}
	if !errors.Is(writeErr, os.ErrPermission) {
		t.Error("cause should be reachable through errors.Is")
	}
}

// -----------------------------------------------------------------------------
// RecordError Tests
// -----------------------------------------------------------------------------

func TestRecordError(t *testing.T) {
	err := NewRecordError("dev;editor").WithLine(2)

	want := `malformed record [line=2]: "dev;editor"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrMalformedRecord) {
		t.Error("errors.Is(err, ErrMalformedRecord) = false, want true")
	}
	if err.Severity() != SeverityError {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityError)
	}

	reasoned := NewRecordError("a;b").WithReason("expected 3 fields, got 2")
	want = `malformed record: expected 3 fields, got 2: "a;b"`
	if got := reasoned.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// -----------------------------------------------------------------------------
// BackupError Tests
// -----------------------------------------------------------------------------

func TestBackupError(t *testing.T) {
	err := NewBackupError("failed to remove old backup", os.ErrPermission).
		WithPath("/home/u/.tmux-session.20240101000000.bak")

	if err.Severity() != SeverityWarning {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityWarning)
	}
	if !errors.Is(err, ErrBackupIO) {
		t.Error("errors.Is(err, ErrBackupIO) = false, want true")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("errors.Is(err, os.ErrPermission) = false, want true")
	}

	want := "backup error [path=/home/u/.tmux-session.20240101000000.bak]: failed to remove old backup: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// -----------------------------------------------------------------------------
// CommandError Tests
// -----------------------------------------------------------------------------

func TestCommandError(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := NewCommandError("tmux new-window failed", cause).
		WithArgs([]string{"new-window", "-d", "-t", "=dev:"}).
		WithStderr("can't find session: dev\n")

	want := "command error [cmd=new-window -d -t =dev:]: tmux new-window failed: exit status 1 (can't find session: dev)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrExternalCommand) {
		t.Error("errors.Is(err, ErrExternalCommand) = false, want true")
	}

	var cmdErr *CommandError
	wrapped := Wrap(err, "restore aborted")
	if !errors.As(wrapped, &cmdErr) {
		t.Fatal("errors.As() failed to find CommandError through Wrap")
	}
	if cmdErr.Stderr != "can't find session: dev" {
		t.Errorf("Stderr = %q, want trimmed stderr", cmdErr.Stderr)
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestGetSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{"nil", nil, SeverityDebug},
		{"plain error", New("boom"), SeverityError},
		{"backup error", NewBackupError("copy failed", nil), SeverityWarning},
		{"wrapped backup error", Wrap(NewBackupError("copy failed", nil), "save"), SeverityWarning},
		{"command error", NewCommandError("failed", nil), SeverityError},
		{"joined backup errors", Join(NewBackupError("copy failed", nil), NewBackupError("prune failed", nil)), SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSeverity(tt.err); got != tt.want {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"file not found", NewFileError("cannot read saved layout", ErrFileNotFound), ExitFatal},
		{"malformed", NewRecordError("x"), ExitFatal},
		{"external", NewCommandError("failed", nil), ExitFatal},
		{"config", Wrap(ErrInvalidConfig, "logging.level"), ExitConfig},
		{"unknown", New("boom"), ExitFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(ErrFileNotFound, "restore %s", "~/.tmux-session")
	if err.Error() != "restore ~/.tmux-session: session file not found" {
		t.Errorf("Wrapf() = %q", err.Error())
	}
	if !errors.Is(err, ErrFileNotFound) {
		t.Error("Wrapf() should preserve the error chain")
	}
}
