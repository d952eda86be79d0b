package domain

import "testing"

func TestTripSkidsTrackDeliveries(t *testing.T) {
	d1 := &Delivery{ID: 1, Company: "Acme", Address: "A", Skids: 2}
	d2 := &Delivery{ID: 2, Company: "Globex", Address: "B", Skids: 3}

	trip := NewTrip(1, d1)
	if trip.TotalSkids != 2 {
		t.Fatalf("TotalSkids = %d, want 2", trip.TotalSkids)
	}

	trip.Add(d2)
	if trip.TotalSkids != 5 {
		t.Fatalf("TotalSkids after add = %d, want 5", trip.TotalSkids)
	}

	removed := trip.Remove(1)
	if removed == nil || removed.ID != 1 {
		t.Fatalf("Remove(1) = %v, want delivery 1", removed)
	}
	if trip.TotalSkids != 3 {
		t.Fatalf("TotalSkids after remove = %d, want 3", trip.TotalSkids)
	}

	if got := trip.Remove(99); got != nil {
		t.Fatalf("Remove(99) = %v, want nil", got)
	}

	trip.Remove(2)
	if !trip.Empty() {
		t.Fatalf("trip should be empty after removing last delivery")
	}
	if trip.TotalSkids != 0 {
		t.Fatalf("TotalSkids of empty trip = %d, want 0", trip.TotalSkids)
	}
}

func TestColorForWrapsPalette(t *testing.T) {
	if ColorFor(1) != ColorFor(6) {
		t.Fatalf("6th trip should reuse the 1st color: %q vs %q", ColorFor(1), ColorFor(6))
	}

	seen := map[string]bool{}
	for n := 1; n <= 5; n++ {
		seen[ColorFor(n)] = true
	}
	if len(seen) != 5 {
		t.Fatalf("first 5 trips should get 5 distinct colors, got %d", len(seen))
	}
}

func TestTripCloneIsDetached(t *testing.T) {
	d := &Delivery{ID: 1, Company: "Acme", Address: "A", Skids: 2}
	trip := NewTrip(3, d)
	trip.VisitOrder = []string{"Acme"}

	c := trip.Clone()
	c.Deliveries[0].Skids = 99
	c.VisitOrder[0] = "changed"

	if trip.Deliveries[0].Skids != 2 {
		t.Fatalf("mutating clone leaked into original delivery")
	}
	if trip.VisitOrder[0] != "Acme" {
		t.Fatalf("mutating clone leaked into original visit order")
	}
}
