package planner

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups of trip or delivery ids that do not exist.
var ErrNotFound = errors.New("not found")

// ErrInvariant marks precondition failures that indicate a caller bug, such
// as adding an already-assigned delivery or racing a catalog reset with a
// stale reference. The engine is the sole mutator of session state, so these
// never arise from correct callers.
var ErrInvariant = errors.New("invariant violation")

// CapacityExceededError rejects an addToTrip whose combined skid count would
// break the per-trip cap. The attempt leaves session state untouched.
type CapacityExceededError struct {
	TripID         int
	AttemptedSkids int
	MaxSkids       int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("trip %d: %d skids exceeds the %d-skid limit", e.TripID, e.AttemptedSkids, e.MaxSkids)
}

// DurationExceededError rejects an addToTrip whose estimated driving hours
// would break the per-trip cap. The attempt leaves session state untouched.
type DurationExceededError struct {
	TripID         int
	AttemptedHours float64
	MaxHours       float64
}

func (e *DurationExceededError) Error() string {
	return fmt.Sprintf("trip %d: %.1f driving hours exceeds the %.1f-hour limit", e.TripID, e.AttemptedHours, e.MaxHours)
}
