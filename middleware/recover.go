package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/xraph/enqueue/job"
)

// Recover returns middleware that recovers from panics raised while writing
// a job, typically from a misbehaving driver. Panics are converted to errors
// and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, d *job.InsertDraft, next Handler) (rec *job.Record, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "job insert panicked",
					slog.String("kind", d.Kind),
					slog.String("queue", d.Queue),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
				rec = nil
				retErr = fmt.Errorf("enqueue: panic inserting job %s: %v", d.Kind, r)
			}
		}()
		return next(ctx)
	}
}
