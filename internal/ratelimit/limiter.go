// Package ratelimit provides a keyed sliding-window attempt counter used to
// throttle failed admin verification per client address.
package ratelimit

import "context"

// Limiter tracks attempts per key over a rolling window.
//
// Allow reports whether the key still has budget; Record charges one attempt
// against it. Callers charge only failed verifications, so a successful login
// never consumes budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Record(ctx context.Context, key string) error
}
