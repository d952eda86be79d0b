package planner

import (
	"context"
	"fmt"
	"sync"

	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/ports"
)

// Session limit defaults, overridable at runtime via SetLimits.
const (
	DefaultMaxSkidsPerTrip        = 6
	DefaultMaxDrivingHoursPerTrip = 8.0
)

// Planner owns the session state of the interactive trip planner: the
// delivery catalog, the live trips, and the operator's capacity and duration
// limits. It is the sole mutator of that state.
//
// Concurrency model: a session RWMutex guards all reads and commits, and a
// per-trip mutex serializes AddToTrip/RemoveFromTrip on the same trip across
// their estimate call, so a slow earlier estimate can never be overwritten
// by a faster later one. The session lock is released while an estimate is
// in flight, so mutations on different trips run in parallel and readers
// always see the last committed state.
type Planner struct {
	estimator ports.RouteEstimator

	mu         sync.RWMutex
	deliveries []*domain.Delivery
	byID       map[int]*domain.Delivery
	trips      map[int]*domain.Trip
	tripOrder  []int
	tripLocks  map[int]*sync.Mutex
	inFlight   map[int]bool
	nextTripID int
	maxSkids   int
	maxHours   float64
}

func New(estimator ports.RouteEstimator) *Planner {
	return &Planner{
		estimator:  estimator,
		byID:       map[int]*domain.Delivery{},
		trips:      map[int]*domain.Trip{},
		tripLocks:  map[int]*sync.Mutex{},
		inFlight:   map[int]bool{},
		nextTripID: 1,
		maxSkids:   DefaultMaxSkidsPerTrip,
		maxHours:   DefaultMaxDrivingHoursPerTrip,
	}
}

// IngestCatalog normalizes raw rows into a fresh catalog and resets the
// session: all trips are discarded and every delivery starts unassigned.
func (p *Planner) IngestCatalog(rows []catalog.RawRow) []*domain.Delivery {
	return p.ResetCatalog(catalog.Ingest(rows))
}

// ResetCatalog replaces the catalog with already-typed deliveries (for
// example a seed store preload) and resets the session. The trip id counter
// keeps counting; ids are never reused within a process.
func (p *Planner) ResetCatalog(deliveries []*domain.Delivery) []*domain.Delivery {
	fresh := make([]*domain.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		c := d.Clone()
		c.AssignedTripID = nil
		fresh = append(fresh, c)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.deliveries = fresh
	p.byID = make(map[int]*domain.Delivery, len(fresh))
	for _, d := range fresh {
		p.byID[d.ID] = d
	}
	p.trips = map[int]*domain.Trip{}
	p.tripOrder = nil
	p.tripLocks = map[int]*sync.Mutex{}
	p.inFlight = map[int]bool{}

	return cloneDeliveries(fresh)
}

// SetLimits updates the session constraints. Limits apply at mutation time
// only; existing trips are not retroactively invalidated.
func (p *Planner) SetLimits(maxSkids int, maxHours float64) error {
	if maxSkids < 1 {
		return fmt.Errorf("set limits: max skids per trip must be positive, got %d", maxSkids)
	}
	if maxHours <= 0 {
		return fmt.Errorf("set limits: max driving hours per trip must be positive, got %g", maxHours)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.maxSkids = maxSkids
	p.maxHours = maxHours
	return nil
}

// Limits returns the current session constraints.
func (p *Planner) Limits() (maxSkids int, maxHours float64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.maxSkids, p.maxHours
}

// CreateTrip founds a new trip around a single unassigned delivery.
//
// The trip id is allocated when the estimate resolves, from a monotonic
// counter never derived from the current trip count. A single delivery is
// assumed always drivable, so no constraint check applies here; an
// oversized delivery still founds its own trip.
func (p *Planner) CreateTrip(ctx context.Context, deliveryID int) (*domain.Trip, error) {
	p.mu.RLock()
	d, ok := p.byID[deliveryID]
	if !ok {
		p.mu.RUnlock()
		return nil, fmt.Errorf("create trip: delivery %d: %w", deliveryID, ErrNotFound)
	}
	if d.Assigned() {
		p.mu.RUnlock()
		return nil, fmt.Errorf("create trip: delivery %d is already assigned: %w", deliveryID, ErrInvariant)
	}
	stop := d.Clone()
	p.mu.RUnlock()

	est, err := p.estimator.Estimate(ctx, []*domain.Delivery{stop})
	if err != nil {
		return nil, fmt.Errorf("create trip: estimate: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Revalidate: the delivery may have been assigned elsewhere, or the
	// catalog replaced, while the estimate was in flight.
	cur, ok := p.byID[deliveryID]
	if !ok || cur != d {
		return nil, fmt.Errorf("create trip: catalog changed under delivery %d: %w", deliveryID, ErrInvariant)
	}
	if cur.Assigned() {
		return nil, fmt.Errorf("create trip: delivery %d is already assigned: %w", deliveryID, ErrInvariant)
	}

	id := p.nextTripID
	p.nextTripID++

	trip := domain.NewTrip(id, cur)
	trip.EstimatedHours = est.Hours
	trip.EstimatedDistanceKm = est.DistanceKm
	trip.VisitOrder = est.Order

	tripID := id
	cur.AssignedTripID = &tripID

	p.trips[id] = trip
	p.tripOrder = append(p.tripOrder, id)
	p.tripLocks[id] = &sync.Mutex{}

	return trip.Clone(), nil
}

// AddToTrip appends an unassigned delivery to an existing trip.
//
// Order of checks: the capacity pre-check is cheap and runs before any
// network call; the duration check runs against the returned estimate. A
// rejection of either kind leaves all session state exactly as it was.
func (p *Planner) AddToTrip(ctx context.Context, tripID, deliveryID int) (*domain.Trip, error) {
	lock, err := p.tripLock(tripID)
	if err != nil {
		return nil, fmt.Errorf("add to trip: %w", err)
	}
	lock.Lock()
	defer lock.Unlock()

	p.mu.Lock()
	trip, ok := p.trips[tripID]
	if !ok {
		// Destroyed while we waited for the lock.
		p.mu.Unlock()
		return nil, fmt.Errorf("add to trip: trip %d: %w", tripID, ErrNotFound)
	}
	d, ok := p.byID[deliveryID]
	if !ok {
		p.mu.Unlock()
		return nil, fmt.Errorf("add to trip %d: delivery %d: %w", tripID, deliveryID, ErrNotFound)
	}
	if d.Assigned() {
		p.mu.Unlock()
		return nil, fmt.Errorf("add to trip %d: delivery %d is already assigned: %w", tripID, deliveryID, ErrInvariant)
	}

	maxSkids, maxHours := p.maxSkids, p.maxHours
	if attempted := trip.TotalSkids + d.Skids; attempted > maxSkids {
		p.mu.Unlock()
		return nil, &CapacityExceededError{TripID: tripID, AttemptedSkids: attempted, MaxSkids: maxSkids}
	}

	stops := snapshotStops(trip.Deliveries, d)
	p.inFlight[tripID] = true
	p.mu.Unlock()
	defer p.clearBusy(tripID)

	est, err := p.estimator.Estimate(ctx, stops)
	if err != nil {
		return nil, fmt.Errorf("add to trip %d: estimate: %w", tripID, err)
	}
	if est.Hours > maxHours {
		return nil, &DurationExceededError{TripID: tripID, AttemptedHours: est.Hours, MaxHours: maxHours}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// The trip lock kept the trip's deliveries stable; guard against a
	// catalog reset swapping the session out mid-flight.
	if cur, ok := p.trips[tripID]; !ok || cur != trip {
		return nil, fmt.Errorf("add to trip %d: session reset while estimating: %w", tripID, ErrInvariant)
	}
	if cur, ok := p.byID[deliveryID]; !ok || cur != d || d.Assigned() {
		return nil, fmt.Errorf("add to trip %d: delivery %d changed while estimating: %w", tripID, deliveryID, ErrInvariant)
	}

	trip.Add(d)
	trip.EstimatedHours = est.Hours
	trip.EstimatedDistanceKm = est.DistanceKm
	trip.VisitOrder = est.Order

	id := tripID
	d.AssignedTripID = &id

	return trip.Clone(), nil
}

// RemoveFromTrip takes a delivery off its trip.
//
// The delivery becomes visibly unassigned immediately, before any
// re-estimation. Removing the last delivery destroys the trip without an
// estimate call and returns a nil trip. Otherwise the remaining stops are
// re-estimated while the trip lock queues any further mutations; readers may
// briefly see the shrunk delivery list next to the previous metrics.
func (p *Planner) RemoveFromTrip(ctx context.Context, tripID, deliveryID int) (*domain.Trip, error) {
	lock, err := p.tripLock(tripID)
	if err != nil {
		return nil, fmt.Errorf("remove from trip: %w", err)
	}
	lock.Lock()
	defer lock.Unlock()

	p.mu.Lock()
	trip, ok := p.trips[tripID]
	if !ok {
		p.mu.Unlock()
		return nil, fmt.Errorf("remove from trip: trip %d: %w", tripID, ErrNotFound)
	}

	d := trip.Remove(deliveryID)
	if d == nil {
		p.mu.Unlock()
		return nil, fmt.Errorf("remove from trip %d: delivery %d is not on this trip: %w", tripID, deliveryID, ErrInvariant)
	}
	d.AssignedTripID = nil

	if trip.Empty() {
		delete(p.trips, tripID)
		delete(p.tripLocks, tripID)
		p.dropTripOrder(tripID)
		p.mu.Unlock()
		return nil, nil
	}

	stops := snapshotStops(trip.Deliveries, nil)
	p.inFlight[tripID] = true
	p.mu.Unlock()
	defer p.clearBusy(tripID)

	est, err := p.estimator.Estimate(ctx, stops)
	if err != nil {
		return nil, fmt.Errorf("remove from trip %d: estimate: %w", tripID, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if cur, ok := p.trips[tripID]; !ok || cur != trip {
		return nil, fmt.Errorf("remove from trip %d: session reset while estimating: %w", tripID, ErrInvariant)
	}

	trip.EstimatedHours = est.Hours
	trip.EstimatedDistanceKm = est.DistanceKm
	trip.VisitOrder = est.Order

	return trip.Clone(), nil
}

// Deliveries returns the catalog, in ingestion order, as detached copies.
func (p *Planner) Deliveries() []*domain.Delivery {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneDeliveries(p.deliveries)
}

// Trips returns all live trips, in creation order, as detached copies.
func (p *Planner) Trips() []*domain.Trip {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]*domain.Trip, 0, len(p.tripOrder))
	for _, id := range p.tripOrder {
		if t, ok := p.trips[id]; ok {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Trip returns a copy of one trip.
func (p *Planner) Trip(tripID int) (*domain.Trip, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	t, ok := p.trips[tripID]
	if !ok {
		return nil, fmt.Errorf("trip %d: %w", tripID, ErrNotFound)
	}
	return t.Clone(), nil
}

// Busy reports whether a mutation on the trip is waiting on an estimate.
// Read-only callers use it to drive a per-trip "calculating" indicator.
func (p *Planner) Busy(tripID int) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inFlight[tripID]
}

// Summary holds derived aggregate totals across all live trips.
type Summary struct {
	TripCount       int
	AssignedCount   int
	UnassignedCount int
	TotalSkids      int
	TotalHours      float64
	TotalDistanceKm float64
}

// Summarize aggregates the last-committed trip metrics. It may run
// concurrently with in-flight mutations and then reflects the previous
// committed state of the affected trip.
func (p *Planner) Summarize() Summary {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := Summary{TripCount: len(p.trips)}
	for _, t := range p.trips {
		s.AssignedCount += len(t.Deliveries)
		s.TotalSkids += t.TotalSkids
		s.TotalHours += t.EstimatedHours
		s.TotalDistanceKm += t.EstimatedDistanceKm
	}
	s.UnassignedCount = len(p.deliveries) - s.AssignedCount
	return s
}

// tripLock fetches the serialization lock for a trip.
func (p *Planner) tripLock(tripID int) (*sync.Mutex, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	lock, ok := p.tripLocks[tripID]
	if !ok {
		return nil, fmt.Errorf("trip %d: %w", tripID, ErrNotFound)
	}
	return lock, nil
}

func (p *Planner) clearBusy(tripID int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, tripID)
}

func (p *Planner) dropTripOrder(tripID int) {
	for i, id := range p.tripOrder {
		if id == tripID {
			p.tripOrder = append(p.tripOrder[:i], p.tripOrder[i+1:]...)
			return
		}
	}
}

// snapshotStops clones the trip's deliveries (plus an optional extra
// candidate) so the estimator never shares memory with live session state.
func snapshotStops(deliveries []*domain.Delivery, extra *domain.Delivery) []*domain.Delivery {
	stops := make([]*domain.Delivery, 0, len(deliveries)+1)
	for _, d := range deliveries {
		stops = append(stops, d.Clone())
	}
	if extra != nil {
		stops = append(stops, extra.Clone())
	}
	return stops
}

func cloneDeliveries(deliveries []*domain.Delivery) []*domain.Delivery {
	out := make([]*domain.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, d.Clone())
	}
	return out
}
