package catalog

import "testing"

func TestIngestResolvesAliases(t *testing.T) {
	rows := []RawRow{
		{"Company": "Acme Corp", "Address": "12 Main St", "Skids": float64(3)},
		{"customer": "Globex", "Delivery Address": "7 Oak Ave", "pallets": "2"},
		{"NAME": "Initech", "location": "1 Loop Rd"},
	}

	got := Ingest(rows)
	if len(got) != 3 {
		t.Fatalf("ingested %d deliveries, want 3", len(got))
	}

	if got[0].Company != "Acme Corp" || got[0].Address != "12 Main St" || got[0].Skids != 3 {
		t.Errorf("row 0 = %+v", got[0])
	}
	if got[1].Company != "Globex" || got[1].Address != "7 Oak Ave" || got[1].Skids != 2 {
		t.Errorf("row 1 = %+v", got[1])
	}
	if got[2].Company != "Initech" || got[2].Skids != 1 {
		t.Errorf("row 2 should default skids to 1: %+v", got[2])
	}

	for i, d := range got {
		if d.ID != i+1 {
			t.Errorf("delivery %d has id %d, want %d", i, d.ID, i+1)
		}
		if d.Assigned() {
			t.Errorf("delivery %d should start unassigned", d.ID)
		}
	}
}

func TestIngestDropsRowsMissingMandatoryFields(t *testing.T) {
	rows := []RawRow{
		{"company": "No Address Inc", "skids": float64(4)},
		{"address": "99 Nowhere Ln", "skids": float64(2)},
		{"company": "   ", "address": "5 Blank St"},
		{"company": "Kept Co", "address": "1 Good Rd"},
	}

	got := Ingest(rows)
	if len(got) != 1 {
		t.Fatalf("ingested %d deliveries, want 1", len(got))
	}
	if got[0].Company != "Kept Co" {
		t.Fatalf("kept wrong row: %+v", got[0])
	}
	if got[0].ID != 1 {
		t.Fatalf("ids must be assigned over kept rows only, got %d", got[0].ID)
	}
}

func TestIngestSkidDefaulting(t *testing.T) {
	cases := []struct {
		name string
		row  RawRow
		want int
	}{
		{"absent", RawRow{"company": "A", "address": "B"}, 1},
		{"non-numeric string", RawRow{"company": "A", "address": "B", "skids": "lots"}, 1},
		{"zero", RawRow{"company": "A", "address": "B", "skids": float64(0)}, 1},
		{"negative", RawRow{"company": "A", "address": "B", "skids": float64(-2)}, 1},
		{"fractional", RawRow{"company": "A", "address": "B", "skids": 2.5}, 1},
		{"numeric string", RawRow{"company": "A", "address": "B", "qty": " 4 "}, 4},
		{"integer", RawRow{"company": "A", "address": "B", "skid count": float64(6)}, 6},
	}

	for _, tc := range cases {
		got := Ingest([]RawRow{tc.row})
		if len(got) != 1 {
			t.Fatalf("%s: row was dropped; skids must never reject a row", tc.name)
		}
		if got[0].Skids != tc.want {
			t.Errorf("%s: skids = %d, want %d", tc.name, got[0].Skids, tc.want)
		}
	}
}
