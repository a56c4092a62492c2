// Package logging provides structured diagnostic logging for tmux-layout.
//
// It wraps Go's log/slog to emit JSON records. By default records go to
// stderr; when a log file is configured they go through a RotatingWriter that
// caps the file's size and keeps a fixed number of numbered generations.
//
// Log records are diagnostics for the operator. The user-facing output of
// save and restore (what was written, which windows were created) is printed
// separately by the command layer.
//
// # Basic Usage
//
//	logger, err := logging.NewFileLogger("/home/u/.local/state/tmux-layout/tmux-layout.log",
//		"info", logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger = logger.WithRun(runID).WithCommand("restore")
//	logger.Info("restore finished", "created", 3)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"restore finished","run_id":"...","command":"restore","created":3}
//
// # Thread Safety
//
// Logger and RotatingWriter are safe for concurrent use, although the tool
// itself is single-threaded.
package logging
