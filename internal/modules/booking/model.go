// README: Finalized booking record, immutable once persisted.
package booking

import (
	"time"

	"airporter/internal/types"
)

// Initial status of a freshly submitted transfer. Later transitions are
// owned by the admin back office, not by this module.
const StatusPending = "pending"

// Record combines the frozen transfer request, the chosen driver, and the
// fare quote. It is created only on successful submission.
type Record struct {
	ID             types.ID
	CustomerName   string
	CustomerPhone  string
	FromAddress    string
	ToAddress      string
	FromCoord      types.Coordinate
	ToCoord        types.Coordinate
	PickupDate     string
	PickupTime     string
	PassengerCount int
	VehicleType    string
	DriverID       types.ID
	DriverName     string
	VehicleDesc    string
	LicensePlate   string
	DistanceKm     float64
	DurationMin    float64
	Fare           types.Money
	PaymentMethod  string
	Status         string
	CreatedAt      time.Time
}
