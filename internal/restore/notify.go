package restore

import (
	"context"

	"github.com/Iron-Ham/tmux-layout/internal/logging"
)

// Status-line messages shown after a successful command.
const (
	MessageSaved    = "saved sessions"
	MessageRestored = "restored sessions"
)

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(ctx context.Context, msg string) error
}

// NotifyBestEffort sends msg through n. Failures are logged at DEBUG and
// otherwise ignored. A nil Notifier does nothing.
func NotifyBestEffort(ctx context.Context, n Notifier, msg string, logger *logging.Logger) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, msg); err != nil && logger != nil {
		logger.Debug("notification failed", "message", msg, "error", err.Error())
	}
}
