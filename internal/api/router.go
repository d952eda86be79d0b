package api

import (
	"net/http"

	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/planner"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root; handlers see only the planner engine.
func NewRouter(p *planner.Planner) http.Handler {
	mux := http.NewServeMux()

	catalogHandler := &handlers.CatalogHandler{Planner: p}
	tripHandler := &handlers.TripHandler{Planner: p}
	summaryHandler := &handlers.SummaryHandler{Planner: p}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /catalog", catalogHandler.Ingest)
	mux.HandleFunc("GET /deliveries", catalogHandler.List)

	mux.HandleFunc("GET /trips", tripHandler.List)
	mux.HandleFunc("POST /trips", tripHandler.Create)
	mux.HandleFunc("POST /trips/{id}/deliveries", tripHandler.Add)
	mux.HandleFunc("DELETE /trips/{id}/deliveries/{deliveryID}", tripHandler.Remove)

	mux.HandleFunc("GET /summary", summaryHandler.Summary)
	mux.HandleFunc("GET /limits", summaryHandler.Limits)
	mux.HandleFunc("PUT /limits", summaryHandler.UpdateLimits)

	return requestIDMiddleware(loggingMiddleware(mux))
}
