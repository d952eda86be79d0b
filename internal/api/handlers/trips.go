package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/planner"
)

// TripHandler maps the three planner gesture verbs onto engine operations.
// It is deliberately thin: any front end issuing these calls gets identical
// semantics, with no drag-and-drop assumptions baked in.
type TripHandler struct {
	Planner *planner.Planner
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips := h.Planner.Trips()

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, h.toTripResponse(t))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Create founds a new trip from a single unassigned delivery.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip, err := h.Planner.CreateTrip(r.Context(), req.DeliveryID)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, h.toTripResponse(trip))
}

// Add appends an unassigned delivery to an existing trip.
func (h *TripHandler) Add(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AddDeliveryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	trip, err := h.Planner.AddToTrip(r.Context(), tripID, req.DeliveryID)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.toTripResponse(trip))
}

// Remove takes a delivery off a trip. Removing the last delivery destroys
// the trip and answers with no content.
func (h *TripHandler) Remove(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	deliveryID, ok := pathID(w, r, "deliveryID")
	if !ok {
		return
	}

	trip, err := h.Planner.RemoveFromTrip(r.Context(), tripID, deliveryID)
	if err != nil {
		h.writeEngineError(w, r, err)
		return
	}

	if trip == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, r, http.StatusOK, h.toTripResponse(trip))
}

func (h *TripHandler) toTripResponse(t *domain.Trip) dto.TripResponse {
	return dto.TripResponse{
		TripID:              t.TripID,
		Color:               t.Color,
		TotalSkids:          t.TotalSkids,
		EstimatedHours:      t.EstimatedHours,
		EstimatedDistanceKm: t.EstimatedDistanceKm,
		VisitOrder:          t.VisitOrder,
		Calculating:         h.Planner.Busy(t.TripID),
		Deliveries:          toDeliveryResponses(t.Deliveries),
	}
}

// writeEngineError maps engine outcomes onto HTTP statuses. Constraint
// rejections carry the attempted and limit values so the UI can say which
// limit was hit and by how much.
func (h *TripHandler) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var capErr *planner.CapacityExceededError
	var durErr *planner.DurationExceededError

	switch {
	case errors.As(err, &capErr):
		writeJSON(w, r, http.StatusConflict, map[string]any{
			"error":           "capacity exceeded",
			"message":         capErr.Error(),
			"trip_id":         capErr.TripID,
			"attempted_skids": capErr.AttemptedSkids,
			"max_skids":       capErr.MaxSkids,
		})
	case errors.As(err, &durErr):
		writeJSON(w, r, http.StatusConflict, map[string]any{
			"error":           "duration exceeded",
			"message":         durErr.Error(),
			"trip_id":         durErr.TripID,
			"attempted_hours": durErr.AttemptedHours,
			"max_hours":       durErr.MaxHours,
		})
	case errors.Is(err, planner.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, planner.ErrInvariant):
		// A stale reference from the caller: the delivery or trip moved
		// underneath it. Conflict, not server error.
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		log.Printf("trip mutation failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id < 1 {
		writeError(w, r, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
