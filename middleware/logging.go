package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/enqueue/job"
)

// Logging returns middleware that logs the outcome of each insert.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, d *job.InsertDraft, next Handler) (*job.Record, error) {
		start := time.Now()
		rec, err := next(ctx)
		elapsed := time.Since(start)

		attrs := []any{
			slog.String("kind", d.Kind),
			slog.String("queue", d.Queue),
			slog.Int("priority", d.Priority),
			slog.String("state", string(d.State)),
			slog.Duration("elapsed", elapsed),
		}
		if clientID := ClientIDFromContext(ctx); clientID != "" {
			attrs = append(attrs, slog.String("client_id", clientID))
		}

		if err != nil {
			logger.ErrorContext(ctx, "job insert failed", append(attrs, slog.String("error", err.Error()))...)
			return rec, err
		}

		logger.InfoContext(ctx, "job inserted", append(attrs, slog.Int64("job_id", rec.ID))...)
		return rec, nil
	}
}
