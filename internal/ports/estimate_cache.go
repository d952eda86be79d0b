package ports

import "context"

// Port: a boundary for caching route estimates keyed by a stop fingerprint.
type EstimateCache interface {
	// Get returns the cached estimate for key, and whether one was found.
	Get(ctx context.Context, key string) (RouteEstimate, bool, error)
	// Put stores an estimate under key.
	Put(ctx context.Context, key string, est RouteEstimate) error
}
