package routing

import (
	"math"

	"trip-planner-service/internal/ports"
)

// Offline fallback coefficients. The formula depends only on the stop count,
// never on addresses, so it is exactly reproducible.
const (
	fallbackBaseHours    = 1.5
	fallbackDriveHours   = 0.5 // per stop
	fallbackServiceHours = 0.7 // per stop
	fallbackBaseKm       = 15.0
	fallbackPerStopKm    = 12.0
)

// Fallback returns the deterministic offline estimate for n stops, used
// whenever the routing service cannot produce a candidate.
func Fallback(n int) ports.RouteEstimate {
	return ports.RouteEstimate{
		Hours:      round1(fallbackBaseHours + fallbackDriveHours*float64(n) + fallbackServiceHours*float64(n)),
		DistanceKm: fallbackBaseKm + fallbackPerStopKm*float64(n),
		Fallback:   true,
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
