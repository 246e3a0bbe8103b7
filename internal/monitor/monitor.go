package monitor

import "context"

// Client runs the background maintenance jobs: periodic session validation
// and rate-limiter bucket pruning.
type Client interface {
	Schedule(ctx context.Context) error
}
