// README: Pricing service resolves per-vehicle-type profiles with a logged default fallback.
package pricing

import (
	"context"
	"math"

	"go.uber.org/zap"
)

// ProfileSource is the store contract the service needs.
type ProfileSource interface {
	GetProfile(ctx context.Context, vehicleType string) (Profile, error)
}

type Service struct {
	source ProfileSource
	logger *zap.Logger
}

func NewService(source ProfileSource, logger *zap.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// ProfileFor returns the pricing profile for a vehicle type. A missing row,
// a store error, or non-finite rates all substitute the default profile.
// The substitution is logged so operators can spot stale pricing data.
func (s *Service) ProfileFor(ctx context.Context, vehicleType string) Profile {
	p, err := s.source.GetProfile(ctx, vehicleType)
	if err != nil {
		s.logger.Warn("pricing profile unavailable, using default",
			zap.String("vehicle_type", vehicleType),
			zap.Error(err),
		)
		return DefaultProfile(vehicleType)
	}
	if !usable(p) {
		s.logger.Warn("pricing profile has invalid rates, using default",
			zap.String("vehicle_type", vehicleType),
			zap.Float64("price_per_km", p.PerKm),
			zap.Float64("basic_price", p.BasicPrice),
			zap.Float64("surcharge", p.Surcharge),
		)
		return DefaultProfile(vehicleType)
	}
	return p
}

func usable(p Profile) bool {
	for _, v := range []float64{p.PerKm, p.BasicPrice, p.Surcharge} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return p.PerKm > 0 && p.BasicPrice > 0
}
