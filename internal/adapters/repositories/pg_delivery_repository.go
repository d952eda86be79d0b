package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trip-planner-service/internal/domain"
)

// Postgres-backed implementation of the DeliveryRepository port.
// It holds only the seed catalog; trips and assignments live in the
// in-memory planner session and are never persisted.
type PgDeliveryRepository struct{ DB *sql.DB }

func NewPgDeliveryRepository(db *sql.DB) *PgDeliveryRepository {
	return &PgDeliveryRepository{DB: db}
}

// Return all seeded deliveries, unassigned, in id order.
func (r *PgDeliveryRepository) ListDeliveries(ctx context.Context) ([]*domain.Delivery, error) {
	if r.DB == nil {
		return nil, errors.New("pg delivery repository: DB is nil")
	}

	query := `
	SELECT
		delivery_id,
		company,
		address,
		skids
	FROM deliveries
	ORDER BY delivery_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: query deliveries table: %w", err)
	}
	defer rows.Close()

	deliveries := make([]*domain.Delivery, 0, 64)
	for rows.Next() {
		var d domain.Delivery
		if err := rows.Scan(&d.ID, &d.Company, &d.Address, &d.Skids); err != nil {
			return nil, fmt.Errorf("list deliveries: scan row: %w", err)
		}
		deliveries = append(deliveries, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: row iteration: %w", err)
	}

	return deliveries, nil
}
