package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema for the seed catalog.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDeliveriesQuery := `
	CREATE TABLE IF NOT EXISTS deliveries (
		delivery_id INTEGER PRIMARY KEY,
		company TEXT NOT NULL,
		address TEXT NOT NULL,
		skids INTEGER NOT NULL DEFAULT 1 CHECK (skids >= 1)
	);
	`

	if _, err := tx.Exec(createDeliveriesQuery); err != nil {
		return fmt.Errorf("init schema: create deliveries table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DeliverySeed struct {
	DeliveryID int    `json:"delivery_id"`
	Company    string `json:"company"`
	Address    string `json:"address"`
	Skids      int    `json:"skids"`
}

// Populate the seed catalog from a JSON file. Existing rows with the same id
// are replaced, so reseeding is repeatable.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed deliveries: read %q: %w", jsonPath, err)
	}

	var data []DeliverySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed deliveries: parse json: %w", err)
	}

	rows := make([]DeliverySeed, 0, len(data))
	for i, item := range data {
		if item.DeliveryID <= 0 {
			return fmt.Errorf("seed deliveries: invalid delivery_id at index %d: %d", i, item.DeliveryID)
		}

		company := strings.TrimSpace(item.Company)
		address := strings.TrimSpace(item.Address)
		if company == "" || address == "" {
			return fmt.Errorf("seed deliveries: delivery %d is missing company or address", item.DeliveryID)
		}

		skids := item.Skids
		if skids < 1 {
			skids = 1
		}

		rows = append(rows, DeliverySeed{
			DeliveryID: item.DeliveryID,
			Company:    company,
			Address:    address,
			Skids:      skids,
		})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed deliveries: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := `
	INSERT INTO deliveries (delivery_id, company, address, skids)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (delivery_id) DO UPDATE
	SET company = EXCLUDED.company,
	    address = EXCLUDED.address,
	    skids = EXCLUDED.skids;
	`

	for _, row := range rows {
		if _, err := tx.Exec(upsert, row.DeliveryID, row.Company, row.Address, row.Skids); err != nil {
			return fmt.Errorf("seed deliveries: upsert delivery %d: %w", row.DeliveryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed deliveries: commit tx: %w", err)
	}

	return nil
}
