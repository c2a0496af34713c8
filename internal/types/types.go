// README: Common value objects shared across modules.
package types

// ID identifies sessions, drivers, and bookings.
type ID string

// Money is an integer amount in the smallest unit of the currency (IDR has none).
type Money struct {
	Amount   int64
	Currency string
}

// Coordinate is a geographic point in decimal degrees.
// The zero value (0,0) means "unresolved", never a real location.
type Coordinate struct {
	Lat float64
	Lng float64
}

// IsZero reports whether the coordinate is still unresolved.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}
