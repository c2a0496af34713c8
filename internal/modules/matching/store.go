// README: Matching store backed by PostgreSQL (driver and booking tables are read-only here).
package matching

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// ActiveByVehicleType returns drivers currently on a confirmed or in-progress
// transfer whose vehicle matches the requested type. Row order is whatever
// the query returns; no ranking is applied anywhere in the cascade.
func (s *Store) ActiveByVehicleType(ctx context.Context, vehicleType string) ([]DriverRow, error) {
	rows, err := s.db.Query(ctx, `
        SELECT d.id, d.name, d.phone, COALESCE(d.photo_url, ''),
               v.vehicle_type, v.description, v.license_plate
        FROM bookings b
        JOIN drivers d ON d.id = b.driver_id
        JOIN vehicles v ON v.id = b.vehicle_id
        WHERE b.status IN ($1, $2)
          AND v.vehicle_type = $3`,
		StatusConfirmed, StatusOnRide, vehicleType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDriverRows(rows)
}

// IdleAvailable returns up to limit drivers with status "available" driving
// the requested vehicle type.
func (s *Store) IdleAvailable(ctx context.Context, vehicleType string, limit int) ([]DriverRow, error) {
	rows, err := s.db.Query(ctx, `
        SELECT d.id, d.name, d.phone, COALESCE(d.photo_url, ''),
               v.vehicle_type, v.description, v.license_plate
        FROM drivers d
        JOIN vehicles v ON v.driver_id = d.id
        WHERE d.status = $1
          AND v.vehicle_type = $2
        LIMIT $3`,
		DriverAvailable, vehicleType, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDriverRows(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanDriverRows(rows rowScanner) ([]DriverRow, error) {
	var out []DriverRow
	for rows.Next() {
		var r DriverRow
		if err := rows.Scan(&r.ID, &r.Name, &r.Phone, &r.PhotoURL,
			&r.VehicleType, &r.VehicleDescription, &r.LicensePlate); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
