// README: Pricing profile per vehicle type, with the documented default.
package pricing

// Profile holds the per-km rate, base fee, and airport surcharge for one
// vehicle type. Amounts are in IDR.
type Profile struct {
	VehicleType string
	PerKm       float64
	BasicPrice  float64
	Surcharge   float64
}

// DefaultProfile is substituted whenever the pricing store has no usable
// row for a vehicle type, so fare computation never works from zeros.
func DefaultProfile(vehicleType string) Profile {
	return Profile{
		VehicleType: vehicleType,
		PerKm:       3250,
		BasicPrice:  75000,
		Surcharge:   40000,
	}
}
