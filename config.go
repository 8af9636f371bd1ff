package enqueue

import (
	"time"

	"github.com/xraph/enqueue/id"
	"github.com/xraph/enqueue/middleware"
)

// config holds a Client's settings. It's fixed once NewClient returns.
type config struct {
	// timeNow is the clock used for created_at, the default scheduled_at,
	// and the available/scheduled decision.
	timeNow func() time.Time

	// middleware wraps every insert, outermost first.
	middleware []middleware.Middleware

	// id is attached to the insert context for middleware.
	id id.ClientID
}

// defaultConfig returns a config with sensible defaults.
func defaultConfig() config {
	return config{
		timeNow: time.Now,
	}
}
