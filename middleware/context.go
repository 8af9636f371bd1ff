package middleware

import "context"

type clientIDKey struct{}

// WithClientID returns a context carrying the ID of the client performing
// the insert. The client sets it before running the middleware chain.
func WithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDKey{}, id)
}

// ClientIDFromContext returns the inserting client's ID, or "" if none.
func ClientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey{}).(string)
	return id
}
