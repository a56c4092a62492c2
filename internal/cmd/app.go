package cmd

import (
	"fmt"

	"github.com/Iron-Ham/tmux-layout/internal/backup"
	"github.com/Iron-Ham/tmux-layout/internal/config"
	"github.com/Iron-Ham/tmux-layout/internal/errors"
	"github.com/Iron-Ham/tmux-layout/internal/layout"
	"github.com/Iron-Ham/tmux-layout/internal/logging"
	"github.com/Iron-Ham/tmux-layout/internal/report"
	"github.com/Iron-Ham/tmux-layout/internal/restore"
	"github.com/Iron-Ham/tmux-layout/internal/tmux"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// multiplexer is what the commands need from tmux.
type multiplexer interface {
	restore.Multiplexer
	restore.Notifier
}

// newMultiplexer is replaced in tests to avoid a live tmux server.
var newMultiplexer = func(opts tmux.Options, logger *logging.Logger) multiplexer {
	return tmux.NewClient(opts, logger)
}

// app holds the collaborators of one command invocation.
type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	mux      multiplexer
	notifier restore.Notifier
	store    *layout.Store
	printer  *report.Printer
}

// newApp loads configuration and wires the collaborators for command.
// Configuration problems are reported as errors.ErrInvalidConfig.
func newApp(cmd *cobra.Command, command string, dry bool) (*app, error) {
	if configErr != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, configErr)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}
	logger = logger.WithRun(uuid.NewString()).WithCommand(command)

	// Restore only diffs against the live layout, so a live window it cannot
	// decode is skipped there. Save stays strict.
	mux := newMultiplexer(tmux.Options{
		Binary:        cfg.Tmux.Binary,
		Socket:        cfg.Tmux.Socket,
		Timeout:       cfg.Tmux.CommandTimeout(),
		SkipMalformed: command == "restore",
	}, logger)

	var notifier restore.Notifier
	if cfg.Notifications.Enabled && !dry {
		notifier = mux
	}

	rotator := backup.NewRotator(cfg.Backup.Keep, logger)

	logger.Debug("starting", "session_file", cfg.ResolveSessionFile(), "dry_run", dry)

	return &app{
		cfg:      cfg,
		logger:   logger,
		mux:      mux,
		notifier: notifier,
		store:    layout.NewStore(cfg.ResolveSessionFile(), rotator, logger),
		printer:  report.New(cmd.OutOrStdout(), cfg.Output.Color),
	}, nil
}

// newLogger writes to logging.file when set, otherwise to the command's
// error stream.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	path := cfg.Logging.ResolveLogFile()
	if path == "" {
		return logging.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level), nil
	}
	return logging.NewFileLogger(path, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
}

// close releases the log file, if any.
func (a *app) close() {
	_ = a.logger.Close()
}
