// Package middleware provides composable middleware around job insertion.
//
// A [Middleware] wraps the call that writes an [job.InsertDraft] to storage.
// Middleware are composed into a chain using [Chain] and run once per
// insert, after the draft is built and before the driver is called. They
// are applied right-to-left: the first middleware in the slice is the
// outermost wrapper.
//
//	// logging → tracing → insert
//	chain := middleware.Chain(middleware.Logging(logger), middleware.Tracing())
//
// # Built-in Middleware
//
//   - [Logging] — logs kind, queue, job ID, duration, and outcome of each insert
//   - [Recover] — converts a panicking driver into an error
//   - [Tracing] — wraps each insert in an OpenTelemetry span
//   - [Metrics] — records insert duration and outcome counters
//
// The client stores its ID in the context with [WithClientID]; built-in
// middleware attach it to logs and spans.
//
// # Writing Custom Middleware
//
//	func MyMiddleware() middleware.Middleware {
//	    return func(ctx context.Context, d *job.InsertDraft, next middleware.Handler) (*job.Record, error) {
//	        // pre-processing
//	        rec, err := next(ctx)
//	        // post-processing
//	        return rec, err
//	    }
//	}
//
// Middleware MUST call next to continue the chain and should return
// driver errors unchanged.
package middleware
