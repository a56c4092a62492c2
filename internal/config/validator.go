package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "backup.keep")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidColorModes returns the list of valid output.color values
func ValidColorModes() []string {
	return []string{"auto", "always", "never"}
}

const (
	maxBackupKeep       = 100
	maxCommandTimeoutMs = 60000
	maxLogSizeMB        = 1000
	maxPathLength       = 4096
)

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePath("session_file", c.SessionFile, true)...)
	errors = append(errors, c.validateBackup()...)
	errors = append(errors, c.validateTmux()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateOutput()...)

	return errors
}

// validatePath rejects empty (when required), NUL-containing, or overlong paths
func validatePath(field, path string, required bool) []ValidationError {
	var errors []ValidationError

	if path == "" {
		if required {
			errors = append(errors, ValidationError{
				Field:   field,
				Value:   path,
				Message: "must not be empty",
			})
		}
		return errors
	}

	if strings.ContainsRune(path, '\x00') {
		errors = append(errors, ValidationError{
			Field:   field,
			Value:   path,
			Message: "path contains invalid null character",
		})
	}

	if len(path) > maxPathLength {
		errors = append(errors, ValidationError{
			Field:   field,
			Value:   path,
			Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
		})
	}

	return errors
}

// validateBackup validates the BackupConfig
func (c *Config) validateBackup() []ValidationError {
	var errors []ValidationError

	if c.Backup.Keep < 1 {
		errors = append(errors, ValidationError{
			Field:   "backup.keep",
			Value:   c.Backup.Keep,
			Message: "must be at least 1",
		})
	}
	if c.Backup.Keep > maxBackupKeep {
		errors = append(errors, ValidationError{
			Field:   "backup.keep",
			Value:   c.Backup.Keep,
			Message: fmt.Sprintf("exceeds maximum of %d", maxBackupKeep),
		})
	}

	return errors
}

// validateTmux validates the TmuxConfig
func (c *Config) validateTmux() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Tmux.Binary) == "" {
		errors = append(errors, ValidationError{
			Field:   "tmux.binary",
			Value:   c.Tmux.Binary,
			Message: "must not be empty",
		})
	}

	// -L takes a socket name, not a path; -S paths are not supported
	if strings.ContainsAny(c.Tmux.Socket, "/\x00") {
		errors = append(errors, ValidationError{
			Field:   "tmux.socket",
			Value:   c.Tmux.Socket,
			Message: "must be a socket name, not a path",
		})
	}

	if c.Tmux.CommandTimeoutMs <= 0 {
		errors = append(errors, ValidationError{
			Field:   "tmux.command_timeout_ms",
			Value:   c.Tmux.CommandTimeoutMs,
			Message: "must be positive",
		})
	}
	if c.Tmux.CommandTimeoutMs > maxCommandTimeoutMs {
		errors = append(errors, ValidationError{
			Field:   "tmux.command_timeout_ms",
			Value:   c.Tmux.CommandTimeoutMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", maxCommandTimeoutMs),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	errors = append(errors, validatePath("logging.file", c.Logging.File, false)...)

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateOutput validates the OutputConfig
func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidColorModes(), c.Output.Color) {
		errors = append(errors, ValidationError{
			Field:   "output.color",
			Value:   c.Output.Color,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidColorModes(), ", ")),
		})
	}

	return errors
}
