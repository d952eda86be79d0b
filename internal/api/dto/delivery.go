package dto

type DeliveryResponse struct {
	ID             int    `json:"id"`
	Company        string `json:"company"`
	Address        string `json:"address"`
	Skids          int    `json:"skids"`
	AssignedTripID *int   `json:"assigned_trip_id"`
}

type ListDeliveriesResponse struct {
	Deliveries []DeliveryResponse `json:"deliveries"`
}

// IngestRequest carries raw tabular rows with loosely-named fields; header
// resolution happens in the catalog, not here.
type IngestRequest struct {
	Rows []map[string]any `json:"rows"`
}

type IngestResponse struct {
	Deliveries []DeliveryResponse `json:"deliveries"`
	Count      int                `json:"count"`
}
