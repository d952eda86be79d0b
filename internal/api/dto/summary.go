package dto

type SummaryResponse struct {
	TripCount       int     `json:"trip_count"`
	AssignedCount   int     `json:"assigned_count"`
	UnassignedCount int     `json:"unassigned_count"`
	TotalSkids      int     `json:"total_skids"`
	TotalHours      float64 `json:"total_hours"`
	TotalDistanceKm float64 `json:"total_distance_km"`
}

type LimitsRequest struct {
	MaxSkidsPerTrip        int     `json:"max_skids_per_trip"`
	MaxDrivingHoursPerTrip float64 `json:"max_driving_hours_per_trip"`
}

type LimitsResponse struct {
	MaxSkidsPerTrip        int     `json:"max_skids_per_trip"`
	MaxDrivingHoursPerTrip float64 `json:"max_driving_hours_per_trip"`
}
