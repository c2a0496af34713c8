// README: Booking store backed by PostgreSQL; submission is one atomic insert.
package booking

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

// Insert writes the finalized record in a single statement, so a failure
// leaves nothing behind.
func (s *Store) Insert(ctx context.Context, r *Record) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO transfer_bookings (
            id, customer_name, customer_phone,
            from_address, to_address,
            from_lat, from_lng, to_lat, to_lng,
            pickup_date, pickup_time, passenger_count,
            vehicle_type, driver_id, driver_name, vehicle_description, license_plate,
            distance_km, duration_min, fare, currency,
            payment_method, status, created_at
        ) VALUES (
            $1, $2, $3,
            $4, $5,
            $6, $7, $8, $9,
            $10, $11, $12,
            $13, $14, $15, $16, $17,
            $18, $19, $20, $21,
            $22, $23, $24
        )`,
		string(r.ID), r.CustomerName, r.CustomerPhone,
		r.FromAddress, r.ToAddress,
		r.FromCoord.Lat, r.FromCoord.Lng, r.ToCoord.Lat, r.ToCoord.Lng,
		r.PickupDate, r.PickupTime, r.PassengerCount,
		r.VehicleType, string(r.DriverID), r.DriverName, r.VehicleDesc, r.LicensePlate,
		r.DistanceKm, r.DurationMin, r.Fare.Amount, r.Fare.Currency,
		r.PaymentMethod, r.Status, r.CreatedAt,
	)
	return err
}
