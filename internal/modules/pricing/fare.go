package pricing

import "math"

// baseDistanceKm is the flat-rate band: trips at or under this distance pay
// only the basic price plus surcharge.
const baseDistanceKm = 8.0

// Fare computes the tiered transfer fare. Distance is rounded to one decimal
// place before the band comparison. Non-finite input fails closed to 0; the
// caller is responsible for logging and substituting a default profile, this
// function supplies no defaults of its own.
func Fare(distanceKm, perKm, basicPrice, surcharge float64) float64 {
	if !finite(distanceKm) || !finite(perKm) || !finite(basicPrice) || !finite(surcharge) {
		return 0
	}

	d := math.Round(distanceKm*10) / 10

	total := basicPrice + surcharge
	if d > baseDistanceKm {
		total += (d - baseDistanceKm) * perKm
	}
	if total < 0 {
		return 0
	}
	return total
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
