// Package guard throttles failed delete-password attempts per client.
package guard

import "context"

// AttemptLimiter counts failed attempts per key within a window.
type AttemptLimiter interface {
	// Allow reports whether key still has attempts left. It does not
	// consume one.
	Allow(ctx context.Context, key string) (bool, error)
	// Fail records one failed attempt for key.
	Fail(ctx context.Context, key string) error
	// Reset clears the failures recorded for key.
	Reset(ctx context.Context, key string) error
}
