// Package errors provides centralized error definitions and error handling utilities
// for tmux-layout. It defines the error kinds surfaced by save and restore, error
// constructors with context wrapping, and classification helpers used by the CLI
// to pick an exit status.
//
// # Error Kinds
//
//   - FileError: the session file could not be read or written (ErrFileNotFound
//     when a restore finds no saved layout)
//   - RecordError: a line of the session file is not a valid record
//   - BackupError: a backup copy or prune failed (recovered locally, save proceeds)
//   - CommandError: the tmux collaborator failed to enumerate or create something
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewFileError("cannot read saved layout", errors.ErrFileNotFound).
//		WithPath("/home/u/.tmux-session")
//
//	err := errors.NewRecordError("dev;editor").WithLine(3)
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrMalformedRecord) { ... }
//
//	var cmdErr *errors.CommandError
//	if errors.As(err, &cmdErr) { ... }
//
// # Severity
//
// Backup failures are warnings; every other kind is an error that aborts the
// invocation. ExitCode maps an error to the process exit status.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that are reported but do not abort the operation.
	SeverityWarning
	// SeverityError is for errors that abort the current invocation.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Exit statuses returned by ExitCode.
const (
	ExitOK     = 0
	ExitFatal  = 1
	ExitConfig = 2
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrFileNotFound indicates that the saved session file does not exist.
	ErrFileNotFound = New("session file not found")
	// ErrMalformedRecord indicates that a line could not be decoded into a record.
	ErrMalformedRecord = New("malformed record")
	// ErrBackupIO indicates that a backup could not be created or pruned.
	ErrBackupIO = New("backup I/O failed")
	// ErrExternalCommand indicates that a tmux invocation failed.
	ErrExternalCommand = New("external command failed")
	// ErrInvalidConfig indicates that the configuration failed validation.
	ErrInvalidConfig = New("invalid configuration")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// LayoutError is the base interface for all tmux-layout errors.
type LayoutError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity
}

// baseError provides common functionality for all error types.
type baseError struct {
	message  string
	cause    error
	severity Severity
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// format renders "kind [k=v, ...]: message: cause".
func (e *baseError) format(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain Errors
// -----------------------------------------------------------------------------

// FileError represents a failure to read or write the session file.
//
// Example:
//
//	err := errors.NewFileError("cannot read saved layout", errors.ErrFileNotFound)
//	err = err.WithPath("/home/u/.tmux-session")
//	fmt.Println(err) // "file error [path=/home/u/.tmux-session]: cannot read saved layout: session file not found"
type FileError struct {
	baseError
	Path string
}

// NewFileError creates a new FileError.
func NewFileError(message string, cause error) *FileError {
	return &FileError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithPath adds the file path to the error context.
func (e *FileError) WithPath(path string) *FileError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *FileError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	return e.format("file error", parts)
}

// Is checks if this error matches the target.
func (e *FileError) Is(target error) bool {
	if _, ok := target.(*FileError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// RecordError represents a line that does not decode into exactly three fields.
//
// Example:
//
//	err := errors.NewRecordError("dev;editor").WithLine(2)
//	fmt.Println(err) // `malformed record [line=2]: "dev;editor"`
type RecordError struct {
	baseError
	Text string
	Line int
}

// NewRecordError creates a new RecordError for the offending text.
func NewRecordError(text string) *RecordError {
	return &RecordError{
		baseError: baseError{
			message:  fmt.Sprintf("%q", text),
			cause:    ErrMalformedRecord,
			severity: SeverityError,
		},
		Text: text,
	}
}

// WithLine adds the 1-based line number to the error context.
func (e *RecordError) WithLine(line int) *RecordError {
	e.Line = line
	return e
}

// WithReason replaces the default message with a more specific one.
func (e *RecordError) WithReason(reason string) *RecordError {
	e.message = fmt.Sprintf("%s: %q", reason, e.Text)
	return e
}

// Error returns the formatted error message.
func (e *RecordError) Error() string {
	var parts []string
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}
	prefix := "malformed record"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("malformed record [%s]", strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *RecordError) Is(target error) bool {
	if _, ok := target.(*RecordError); ok {
		return true
	}
	if errors.Is(target, ErrMalformedRecord) {
		return true
	}
	return e.baseError.Is(target)
}

// BackupError represents a failed backup copy or prune. It is a warning:
// the save that triggered it still writes the session file.
type BackupError struct {
	baseError
	Path string
}

// NewBackupError creates a new BackupError.
func NewBackupError(message string, cause error) *BackupError {
	return &BackupError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityWarning,
		},
	}
}

// WithPath adds the backup file path to the error context.
func (e *BackupError) WithPath(path string) *BackupError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *BackupError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	return e.format("backup error", parts)
}

// Is checks if this error matches the target.
func (e *BackupError) Is(target error) bool {
	if _, ok := target.(*BackupError); ok {
		return true
	}
	if errors.Is(target, ErrBackupIO) {
		return true
	}
	return e.baseError.Is(target)
}

// CommandError represents a failed tmux invocation.
//
// Example:
//
//	err := errors.NewCommandError("new-window failed", runErr).
//		WithArgs([]string{"new-window", "-t", "dev:"}).
//		WithStderr("can't find session: dev")
type CommandError struct {
	baseError
	Args   []string
	Stderr string
}

// NewCommandError creates a new CommandError.
func NewCommandError(message string, cause error) *CommandError {
	return &CommandError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithArgs adds the command arguments to the error context.
func (e *CommandError) WithArgs(args []string) *CommandError {
	e.Args = args
	return e
}

// WithStderr adds the captured standard error output to the error context.
func (e *CommandError) WithStderr(stderr string) *CommandError {
	e.Stderr = strings.TrimSpace(stderr)
	return e
}

// Error returns the formatted error message.
func (e *CommandError) Error() string {
	var parts []string
	if len(e.Args) > 0 {
		parts = append(parts, fmt.Sprintf("cmd=%s", strings.Join(e.Args, " ")))
	}
	msg := e.format("command error", parts)
	if e.Stderr != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Stderr)
	}
	return msg
}

// Is checks if this error matches the target.
func (e *CommandError) Is(target error) bool {
	if _, ok := target.(*CommandError); ok {
		return true
	}
	if errors.Is(target, ErrExternalCommand) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement LayoutError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var layoutErr LayoutError
	if As(err, &layoutErr) {
		return layoutErr.Severity()
	}
	return SeverityError
}

// ExitCode maps an error to the process exit status. A nil error, including
// a restore that had nothing to do, exits 0.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case Is(err, ErrInvalidConfig):
		return ExitConfig
	default:
		return ExitFatal
	}
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this returns nil for a nil error.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to read live layout")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
