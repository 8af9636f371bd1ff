package middleware

import (
	"context"

	"github.com/xraph/enqueue/job"
)

// Handler is the terminal function that writes the draft to storage.
type Handler func(ctx context.Context) (*job.Record, error)

// Middleware wraps a Handler with cross-cutting logic.
// It receives the current context, the draft being inserted, and the
// next handler to call. Middleware MUST call next to continue the chain
// and should return its error unchanged.
type Middleware func(ctx context.Context, d *job.InsertDraft, next Handler) (*job.Record, error)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, tracing, metrics) executes as:
//
//	logging → tracing → metrics → insert
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, d *job.InsertDraft, next Handler) (*job.Record, error) {
		// Build the chain from the end backwards.
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) (*job.Record, error) {
				return mw(ctx, d, prev)
			}
		}
		return h(ctx)
	}
}
