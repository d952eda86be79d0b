package ports

import (
	"context"

	"trip-planner-service/internal/domain"
)

// Port: a boundary for retrieving seeded Delivery records from a data source.
type DeliveryRepository interface {
	// Retrieve all deliveries available for planning, unassigned.
	ListDeliveries(ctx context.Context) ([]*domain.Delivery, error)
}
