package service

import (
	"context"
	"time"
)

// pace blocks for a fixed duration. It is a static sleep, not a rate
// limiter; the only way out early is context cancellation.
func pace(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
