// README: Matching service runs the two-tier candidate cascade for a requested vehicle type.
package matching

import (
	"context"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"airporter/internal/config"
	"airporter/internal/modules/pricing"
)

// CandidateSource is the store contract the cascade needs.
type CandidateSource interface {
	ActiveByVehicleType(ctx context.Context, vehicleType string) ([]DriverRow, error)
	IdleAvailable(ctx context.Context, vehicleType string, limit int) ([]DriverRow, error)
}

// ProfileResolver resolves a pricing profile, substituting defaults itself.
type ProfileResolver interface {
	ProfileFor(ctx context.Context, vehicleType string) pricing.Profile
}

type Service struct {
	source  CandidateSource
	pricing ProfileResolver
	cfg     config.MatchingConfig
	logger  *zap.Logger
}

func NewService(source CandidateSource, pricing ProfileResolver, cfg config.MatchingConfig, logger *zap.Logger) *Service {
	return &Service{source: source, pricing: pricing, cfg: cfg, logger: logger}
}

// FindCandidates runs the cascade: drivers already on a compatible transfer
// first, then the idle pool only when that yields nothing. An empty result
// is not an error; the caller presents a retry affordance. The matcher reads
// shared state but never mutates it, and the returned slice keeps the raw
// query order.
func (s *Service) FindCandidates(ctx context.Context, vehicleType string) ([]Candidate, error) {
	active, err := s.source.ActiveByVehicleType(ctx, vehicleType)
	if err != nil {
		return nil, err
	}
	if len(active) > 0 {
		out := make([]Candidate, 0, len(active))
		for _, row := range active {
			// Profile resolved per match: active rows can carry
			// vehicle-specific overrides in future schema revisions.
			profile := s.pricing.ProfileFor(ctx, row.VehicleType)
			out = append(out, s.newCandidate(row, profile))
		}
		s.logger.Debug("matched from active-ride tier",
			zap.String("vehicle_type", vehicleType),
			zap.Int("count", len(out)),
		)
		return out, nil
	}

	idle, err := s.source.IdleAvailable(ctx, vehicleType, s.cfg.IdlePoolLimit)
	if err != nil {
		return nil, err
	}
	if len(idle) == 0 {
		return []Candidate{}, nil
	}

	// One shared profile for the whole idle tier.
	profile := s.pricing.ProfileFor(ctx, vehicleType)
	out := make([]Candidate, 0, len(idle))
	for _, row := range idle {
		out = append(out, s.newCandidate(row, profile))
	}
	s.logger.Debug("matched from idle tier",
		zap.String("vehicle_type", vehicleType),
		zap.Int("count", len(out)),
	)
	return out, nil
}

func (s *Service) newCandidate(row DriverRow, profile pricing.Profile) Candidate {
	dist, eta := s.simulatedProximity()
	return Candidate{
		DriverRow:           row,
		SimulatedDistanceKm: dist,
		SimulatedEtaMin:     eta,
		Pricing:             profile,
	}
}

// simulatedProximity draws a placeholder distance/ETA within the configured
// bounds. Stands in for real telemetry, which the platform does not have.
func (s *Service) simulatedProximity() (float64, int) {
	span := s.cfg.SimMaxKm - s.cfg.SimMinKm
	if span < 0 {
		span = 0
	}
	d := s.cfg.SimMinKm + rand.Float64()*span
	d = math.Round(d*10) / 10
	eta := int(math.Ceil(d * 2))
	if eta < 1 {
		eta = 1
	}
	return d, eta
}
