package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/catalog"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/planner"
)

// CatalogHandler exposes catalog ingestion and read-only delivery listing.
type CatalogHandler struct {
	Planner *planner.Planner
}

// Ingest replaces the catalog with freshly normalized rows. This resets the
// whole planner session: all trips are discarded.
func (h *CatalogHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	rows := make([]catalog.RawRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, catalog.RawRow(row))
	}

	deliveries := h.Planner.IngestCatalog(rows)

	res := dto.IngestResponse{
		Deliveries: toDeliveryResponses(deliveries),
		Count:      len(deliveries),
	}
	writeJSON(w, r, http.StatusOK, res)
}

// List returns the catalog with current assignment state.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	res := dto.ListDeliveriesResponse{
		Deliveries: toDeliveryResponses(h.Planner.Deliveries()),
	}
	writeJSON(w, r, http.StatusOK, res)
}

func toDeliveryResponses(deliveries []*domain.Delivery) []dto.DeliveryResponse {
	out := make([]dto.DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, dto.DeliveryResponse{
			ID:             d.ID,
			Company:        d.Company,
			Address:        d.Address,
			Skids:          d.Skids,
			AssignedTripID: d.AssignedTripID,
		})
	}
	return out
}
