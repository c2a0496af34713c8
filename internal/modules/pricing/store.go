// README: Pricing store backed by PostgreSQL.
package pricing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrProfileNotFound means the vehicle type has no pricing row.
var ErrProfileNotFound = errors.New("pricing profile not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) GetProfile(ctx context.Context, vehicleType string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
        SELECT vehicle_type, price_per_km, basic_price, surcharge
        FROM vehicle_pricing
        WHERE vehicle_type = $1`, vehicleType,
	)

	var p Profile
	err := row.Scan(&p.VehicleType, &p.PerKm, &p.BasicPrice, &p.Surcharge)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}
