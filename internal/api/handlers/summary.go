package handlers

import (
	"net/http"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/planner"
)

// SummaryHandler exposes derived aggregates and the session limits.
type SummaryHandler struct {
	Planner *planner.Planner
}

func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s := h.Planner.Summarize()

	writeJSON(w, r, http.StatusOK, dto.SummaryResponse{
		TripCount:       s.TripCount,
		AssignedCount:   s.AssignedCount,
		UnassignedCount: s.UnassignedCount,
		TotalSkids:      s.TotalSkids,
		TotalHours:      s.TotalHours,
		TotalDistanceKm: s.TotalDistanceKm,
	})
}

func (h *SummaryHandler) Limits(w http.ResponseWriter, r *http.Request) {
	maxSkids, maxHours := h.Planner.Limits()
	writeJSON(w, r, http.StatusOK, dto.LimitsResponse{
		MaxSkidsPerTrip:        maxSkids,
		MaxDrivingHoursPerTrip: maxHours,
	})
}

// UpdateLimits changes the session constraints. Existing trips are not
// retroactively invalidated; limits bind the next mutation.
func (h *SummaryHandler) UpdateLimits(w http.ResponseWriter, r *http.Request) {
	var req dto.LimitsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.Planner.SetLimits(req.MaxSkidsPerTrip, req.MaxDrivingHoursPerTrip); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	maxSkids, maxHours := h.Planner.Limits()
	writeJSON(w, r, http.StatusOK, dto.LimitsResponse{
		MaxSkidsPerTrip:        maxSkids,
		MaxDrivingHoursPerTrip: maxHours,
	})
}
