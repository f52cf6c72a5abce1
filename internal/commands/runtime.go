package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-wpmigrate/internal/logging"
	"github.com/goliatone/go-wpmigrate/pkg/interfaces"
)

// DefaultCommandTimeout bounds a single migration run. Large exports are read
// into memory once, so minutes are plenty.
const DefaultCommandTimeout = 5 * time.Minute

// runContext derives the context a command executes under. A nil parent is
// replaced with context.Background and timeout <= 0 means no deadline.
func runContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

// EnsureLogger returns logger, or a no-op logger when it is nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
