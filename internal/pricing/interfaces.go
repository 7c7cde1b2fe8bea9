// Package pricing defines the contracts shared by the price lookup providers.
package pricing

import (
	"context"
	"time"
)

// Query carries the best-available identity for a lookup. Providers use the
// UPC when present and fall back to the description otherwise.
type Query struct {
	UPC         string
	Description string
}

// Quote is a successful provider lookup.
type Quote struct {
	Price       float64
	ProductName string
	SourceURL   string
}

// Source is a single tier of the price lookup cascade.
//
// Lookup returns common.ErrMiss (or common.ErrAuthMiss) for routine
// failures: not found, empty result set, non-2xx status, malformed payload.
// Any other error is an unrecoverable transport problem; callers must treat
// it as a miss rather than abort the batch.
type Source interface {
	Name() string
	Lookup(ctx context.Context, q Query) (Quote, error)
}

// RetryOptions configures retry behavior for provider calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
