// README: Driver candidates produced by the two-tier matching cascade.
package matching

import (
	"airporter/internal/modules/pricing"
	"airporter/internal/types"
)

// Booking states that make a driver eligible for the first matching tier.
const (
	StatusConfirmed = "confirmed"
	StatusOnRide    = "on_ride"
)

// DriverAvailable is the idle-pool status consulted by the second tier.
const DriverAvailable = "available"

// DriverRow is what the store returns for one eligible driver. Candidates
// are built from these rows per search and never persisted.
type DriverRow struct {
	ID                 types.ID
	Name               string
	Phone              string
	PhotoURL           string
	VehicleType        string
	VehicleDescription string
	LicensePlate       string
}

// Candidate is an ephemeral match offered to the passenger. Distance and ETA
// are simulated placeholders: no live driver telemetry feed exists, and a
// future real feed can replace them without changing this contract.
type Candidate struct {
	DriverRow
	SimulatedDistanceKm float64
	SimulatedEtaMin     int
	Pricing             pricing.Profile
}
