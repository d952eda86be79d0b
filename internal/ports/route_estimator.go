package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// Route metrics for one candidate stop list.
// Order is the optimizer's company-name visiting sequence. Fallback marks an
// estimate produced by the deterministic offline formula instead of the
// routing service; callers may surface it as a diagnostic but must not
// branch on it for correctness.
type RouteEstimate struct {
	Hours      float64
	DistanceKm float64
	Order      []string
	Fallback   bool
}

// Contract for computing route metrics over a candidate stop list.
type RouteEstimator interface {
	// Estimate returns route metrics for the given stops.
	// Implementations must produce an estimate for every non-empty stop
	// list; transport failures are absorbed into a deterministic fallback
	// and never surface here. The error branch is reserved for an empty
	// stop list, which indicates a caller bug.
	Estimate(ctx context.Context, stops []*domain.Delivery) (RouteEstimate, error)
}
