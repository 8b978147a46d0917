package services

import (
	"context"
	"time"
)

// bounded caps a storage call with the configured database timeout so no
// query can outlive its request indefinitely. A zero timeout leaves the
// caller's deadline in place.
func bounded(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
