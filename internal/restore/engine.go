package restore

import (
	"context"

	"github.com/Iron-Ham/tmux-layout/internal/errors"
	"github.com/Iron-Ham/tmux-layout/internal/logging"
	"github.com/Iron-Ham/tmux-layout/internal/topology"
)

// Engine applies the creations that bring the live layout up to a target.
type Engine struct {
	mux    Multiplexer
	logger *logging.Logger
}

// NewEngine returns an Engine that reads and creates through mux.
func NewEngine(mux Multiplexer, logger *logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Engine{
		mux:    mux,
		logger: logger,
	}
}

// Restore reads the saved topology from src and reconciles against it. A
// missing or malformed saved file aborts before any tmux call.
func (e *Engine) Restore(ctx context.Context, src Source) (Result, error) {
	target, err := src.ReadSaved()
	if err != nil {
		return Result{}, err
	}
	return e.Reconcile(ctx, target)
}

// Reconcile creates every target record that the live layout lacks.
//
// The live layout is read once and the per-record shortfall
// max(target count - live count, 0) is computed up front. Records are then
// visited in target order: an absent session is created with the record as
// its first window, a present session gets a new window while the record's
// shortfall is positive, and each creation consumes one unit of shortfall.
//
// On a tmux failure the actions issued so far are returned with the error;
// nothing is rolled back.
func (e *Engine) Reconcile(ctx context.Context, target topology.Topology) (Result, error) {
	var result Result

	live, err := e.mux.ListWindows(ctx)
	if err != nil {
		return result, commandError("failed to read live layout", err)
	}
	shortfall := topology.Difference(target, live)
	e.logger.Debug("computed shortfall",
		"target_records", len(target),
		"live_records", len(live),
		"missing", len(shortfall),
	)

	for _, rec := range target {
		log := e.logger.WithSession(rec.Session)

		exists, err := e.mux.HasSession(ctx, rec.Session)
		if err != nil {
			return result, commandError("failed to check session "+rec.Session, err)
		}

		if !exists {
			if err := e.mux.NewSession(ctx, rec.Session, rec.Window, rec.Directory); err != nil {
				return result, commandError("failed to create session "+rec.Session, err)
			}
			result.Actions = append(result.Actions, Action{Kind: CreateSession, Record: rec})
			if shortfall[rec] > 0 {
				shortfall[rec]--
			}
			log.Info("created session", "window", rec.Window, "dir", rec.Directory)
			continue
		}

		if shortfall[rec] > 0 {
			if err := e.mux.NewWindow(ctx, rec.Session, rec.Window, rec.Directory); err != nil {
				return result, commandError("failed to create window "+rec.Window, err)
			}
			result.Actions = append(result.Actions, Action{Kind: CreateWindow, Record: rec})
			shortfall[rec]--
			log.Info("created window", "window", rec.Window, "dir", rec.Directory)
			continue
		}

		result.Skipped++
		log.Debug("window already present", "window", rec.Window, "dir", rec.Directory)
	}

	return result, nil
}

// commandError classifies a Multiplexer failure as an external command
// error, keeping an existing CommandError intact.
func commandError(msg string, err error) error {
	if errors.Is(err, errors.ErrExternalCommand) {
		return errors.Wrap(err, msg)
	}
	return errors.NewCommandError(msg, err)
}
