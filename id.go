package enqueue

import "github.com/xraph/enqueue/id"

// ClientID identifies one Client instance.
type ClientID = id.ClientID
