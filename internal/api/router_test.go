package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trip-planner-service/internal/adapters/routing"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/planner"
	"trip-planner-service/internal/ports"
)

func newTestServer(t *testing.T) (*httptest.Server, *planner.Planner) {
	t.Helper()

	est := routing.NewMockEstimator(map[int]ports.RouteEstimate{
		1: {Hours: 2.0, DistanceKm: 30},
		2: {Hours: 4.0, DistanceKm: 60},
	})
	p := planner.New(est)

	srv := httptest.NewServer(NewRouter(p))
	t.Cleanup(srv.Close)
	return srv, p
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestPlannerEndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)

	// Ingest a catalog; the row missing an address is dropped.
	resp := postJSON(t, srv.URL+"/catalog", dto.IngestRequest{Rows: []map[string]any{
		{"company": "Acme Corp", "address": "12 Main St", "skids": 2},
		{"customer": "Globex", "delivery address": "7 Oak Ave", "pallets": 3},
		{"company": "No Address Inc"},
	}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ingest status = %d, want 200", resp.StatusCode)
	}
	ingested := decodeJSON[dto.IngestResponse](t, resp)
	if ingested.Count != 2 {
		t.Fatalf("ingested count = %d, want 2", ingested.Count)
	}

	// Found a trip from the first delivery.
	resp = postJSON(t, srv.URL+"/trips", dto.CreateTripRequest{DeliveryID: 1})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create trip status = %d, want 201", resp.StatusCode)
	}
	trip := decodeJSON[dto.TripResponse](t, resp)
	if trip.TotalSkids != 2 || trip.EstimatedHours != 2.0 {
		t.Fatalf("trip = %+v, want 2 skids at 2.0h", trip)
	}

	// Add the second delivery.
	resp = postJSON(t, srv.URL+"/trips/1/deliveries", dto.AddDeliveryRequest{DeliveryID: 2})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add status = %d, want 200", resp.StatusCode)
	}
	trip = decodeJSON[dto.TripResponse](t, resp)
	if trip.TotalSkids != 5 || trip.EstimatedHours != 4.0 {
		t.Fatalf("trip after add = %+v, want 5 skids at 4.0h", trip)
	}

	// Summary reflects the committed trip.
	resp, err := http.Get(srv.URL + "/summary")
	if err != nil {
		t.Fatalf("GET /summary: %v", err)
	}
	summary := decodeJSON[dto.SummaryResponse](t, resp)
	if summary.TripCount != 1 || summary.TotalSkids != 5 || summary.UnassignedCount != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	// Remove both deliveries; the second removal destroys the trip.
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/trips/1/deliveries/2", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = http.NewRequest(http.MethodDelete, srv.URL+"/trips/1/deliveries/1", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE last: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("destroying remove status = %d, want 204", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCapacityRejectionMapsToConflict(t *testing.T) {
	srv, p := newTestServer(t)
	if err := p.SetLimits(4, 8); err != nil {
		t.Fatalf("SetLimits: %v", err)
	}

	resp := postJSON(t, srv.URL+"/catalog", dto.IngestRequest{Rows: []map[string]any{
		{"company": "Acme", "address": "A", "skids": 3},
		{"company": "Globex", "address": "B", "skids": 3},
	}})
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/trips", dto.CreateTripRequest{DeliveryID: 1})
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/trips/1/deliveries", dto.AddDeliveryRequest{DeliveryID: 2})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	body := decodeJSON[map[string]any](t, resp)
	if body["error"] != "capacity exceeded" {
		t.Fatalf("body = %v, want capacity rejection details", body)
	}
	if body["attempted_skids"] != float64(6) || body["max_skids"] != float64(4) {
		t.Fatalf("rejection values = %v, want attempted 6 over limit 4", body)
	}
}

func TestStaleReferenceMapping(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/catalog", dto.IngestRequest{Rows: []map[string]any{
		{"company": "Acme", "address": "A", "skids": 1},
	}})
	resp.Body.Close()

	// Unknown trip id: not found.
	resp = postJSON(t, srv.URL+"/trips/42/deliveries", dto.AddDeliveryRequest{DeliveryID: 1})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown trip status = %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	// Creating a trip twice from the same delivery: conflict.
	resp = postJSON(t, srv.URL+"/trips", dto.CreateTripRequest{DeliveryID: 1})
	resp.Body.Close()
	resp = postJSON(t, srv.URL+"/trips", dto.CreateTripRequest{DeliveryID: 1})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("double create status = %d, want 409", resp.StatusCode)
	}
	resp.Body.Close()
}
