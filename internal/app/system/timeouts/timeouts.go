// Package timeouts provides centralized timeout values for handler and
// background operations.
package timeouts

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// Ping is the timeout for health checks.
	Ping = 2 * time.Second
	// Short is the timeout for simple store operations.
	Short = 5 * time.Second
	// Batch is the timeout for bulk operations such as cleanup sweeps.
	Batch = 60 * time.Second
)

// WithTimeout creates a context with timeout and logs when the deadline
// is exceeded.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
