package enqueue

import (
	"time"

	"github.com/xraph/enqueue/id"
	"github.com/xraph/enqueue/middleware"
)

// Option configures a Client.
type Option func(*config) error

// WithTimeNowFunc overrides the clock used to stamp inserted jobs. Tests use
// it to make created_at and the initial state deterministic.
func WithTimeNowFunc(now func() time.Time) Option {
	return func(c *config) error {
		if now == nil {
			return ErrNilTimeNowFunc
		}
		c.timeNow = now
		return nil
	}
}

// WithMiddleware appends middleware around every insert. The first
// middleware given is the outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(c *config) error {
		c.middleware = append(c.middleware, mws...)
		return nil
	}
}

// WithID sets the client's ID instead of generating one.
func WithID(clientID id.ClientID) Option {
	return func(c *config) error {
		if clientID.IsNil() {
			return ErrNilClientID
		}
		c.id = clientID
		return nil
	}
}
