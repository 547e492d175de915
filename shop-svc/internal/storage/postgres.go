package storage

import (
	"context"
	"database/sql"

	"foodwala-storefront/shop-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// PostgresZoneRepository reads the delivery zone table. Zones are edited by
// operators directly in the database and loaded once at startup.
type PostgresZoneRepository struct {
	DB *sql.DB
}

func NewPostgresZoneRepository(db *sql.DB) *PostgresZoneRepository {
	return &PostgresZoneRepository{DB: db}
}

func (r *PostgresZoneRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS delivery_zones (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			fee        NUMERIC(10, 2) NOT NULL CHECK (fee >= 0),
			position   INTEGER NOT NULL DEFAULT 0,
			active     BOOLEAN NOT NULL DEFAULT TRUE
		)
	`)
	return err
}

func (r *PostgresZoneRepository) ListZones(ctx context.Context) ([]domain.DeliveryZone, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, fee
		FROM delivery_zones
		WHERE active = TRUE
		ORDER BY position, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []domain.DeliveryZone
	for rows.Next() {
		var (
			zone domain.DeliveryZone
			fee  string
		)
		if err := rows.Scan(&zone.ID, &zone.Name, &fee); err != nil {
			return nil, err
		}
		if zone.Fee, err = decimal.NewFromString(fee); err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}
	return zones, rows.Err()
}
