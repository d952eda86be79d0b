package dto

type CreateTripRequest struct {
	DeliveryID int `json:"delivery_id"`
}

type AddDeliveryRequest struct {
	DeliveryID int `json:"delivery_id"`
}

type TripResponse struct {
	TripID              int                `json:"trip_id"`
	Color               string             `json:"color"`
	TotalSkids          int                `json:"total_skids"`
	EstimatedHours      float64            `json:"estimated_hours"`
	EstimatedDistanceKm float64            `json:"estimated_distance_km"`
	VisitOrder          []string           `json:"visit_order,omitempty"`
	Calculating         bool               `json:"calculating"`
	Deliveries          []DeliveryResponse `json:"deliveries"`
}

type ListTripsResponse struct {
	Trips []TripResponse `json:"trips"`
}
