package domain

// Represents a single delivery stop handled by the planner.
// A Delivery has a unique identifier, a company display name, a free-text
// postal address (opaque to the engine; passed through to the routing
// service), and a skid count measuring its cargo footprint.
// AssignedTripID is nil while the delivery is unassigned and references at
// most one trip at any time.
type Delivery struct {
	ID             int
	Company        string
	Address        string
	Skids          int
	AssignedTripID *int
}

// Report whether the delivery currently belongs to a trip.
func (d *Delivery) Assigned() bool { return d.AssignedTripID != nil }

// Clone returns a detached copy safe to hand to callers and adapters.
func (d *Delivery) Clone() *Delivery {
	c := *d
	if d.AssignedTripID != nil {
		id := *d.AssignedTripID
		c.AssignedTripID = &id
	}
	return &c
}
