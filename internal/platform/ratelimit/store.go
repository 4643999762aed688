// Package ratelimit implements fixed-window request limiting for gin.
package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per key inside a fixed window.
type Store interface {
	// Increment records one hit for key and returns the hit count in the
	// current window and the time left until the window resets.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
	// Decrement removes one previously recorded hit.
	Decrement(ctx context.Context, key string) error
}
