package domain

import "fmt"

// tripPalette is the fixed presentation palette cycled over trip ids.
// The 6th trip reuses the 1st color; observed behavior kept as-is.
var tripPalette = [...]string{"#2563eb", "#16a34a", "#ea580c", "#9333ea", "#dc2626"}

// ColorFor returns the palette color for a trip created n-th (1-based).
func ColorFor(n int) string {
	if n < 1 {
		n = 1
	}
	return tripPalette[(n-1)%len(tripPalette)]
}

// Represents an ordered group of deliveries visited by one vehicle in one
// outing. Deliveries keeps user insertion order, which is not necessarily the
// optimized visiting order; VisitOrder holds the company sequence returned by
// the route optimizer for the last committed estimate.
//
// TotalSkids always equals the sum of Skids over Deliveries; mutators
// recompute it and never let it drift.
type Trip struct {
	TripID              int
	Color               string
	Deliveries          []*Delivery
	TotalSkids          int
	EstimatedHours      float64
	EstimatedDistanceKm float64
	VisitOrder          []string
}

// NewTrip founds a trip around its first delivery.
func NewTrip(id int, first *Delivery) *Trip {
	t := &Trip{
		TripID:     id,
		Color:      ColorFor(id),
		Deliveries: []*Delivery{first},
	}
	t.recomputeSkids()
	return t
}

// Add appends a delivery to the trip.
func (t *Trip) Add(d *Delivery) {
	t.Deliveries = append(t.Deliveries, d)
	t.recomputeSkids()
}

// Remove takes the delivery with the given id off the trip and returns it,
// or nil if the delivery is not on this trip.
func (t *Trip) Remove(deliveryID int) *Delivery {
	for i, d := range t.Deliveries {
		if d.ID == deliveryID {
			t.Deliveries = append(t.Deliveries[:i], t.Deliveries[i+1:]...)
			t.recomputeSkids()
			return d
		}
	}
	return nil
}

// Empty reports whether the trip has no deliveries left.
func (t *Trip) Empty() bool { return len(t.Deliveries) == 0 }

func (t *Trip) recomputeSkids() {
	sum := 0
	for _, d := range t.Deliveries {
		sum += d.Skids
	}
	t.TotalSkids = sum
}

// Clone returns a detached deep copy of the trip.
func (t *Trip) Clone() *Trip {
	c := *t
	c.Deliveries = make([]*Delivery, 0, len(t.Deliveries))
	for _, d := range t.Deliveries {
		c.Deliveries = append(c.Deliveries, d.Clone())
	}
	c.VisitOrder = append([]string(nil), t.VisitOrder...)
	return &c
}

func (t *Trip) String() string {
	return fmt.Sprintf("trip %d: %d deliveries, %d skids, %.1fh, %.1fkm",
		t.TripID, len(t.Deliveries), t.TotalSkids, t.EstimatedHours, t.EstimatedDistanceKm)
}
