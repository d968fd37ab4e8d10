package notify

import (
	"context"

	"github.com/bookhaven/bookhaven-client/pkg/logger"
)

// Notifier surfaces transient, user-visible messages. Stores emit through it
// instead of returning mutation failures to every call site.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// LogNotifier writes notifications through the structured logger.
type LogNotifier struct {
	logg *logger.Logger
}

// NewLogNotifier builds a notifier backed by the provided logger.
func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) Success(ctx context.Context, msg string) {
	if n == nil || n.logg == nil {
		return
	}
	n.logg.Info(ctx, msg)
}

func (n *LogNotifier) Error(ctx context.Context, msg string) {
	if n == nil || n.logg == nil {
		return
	}
	n.logg.Warn(ctx, msg)
}

// Noop discards all notifications.
type Noop struct{}

func (Noop) Success(ctx context.Context, msg string) {}
func (Noop) Error(ctx context.Context, msg string)   {}
