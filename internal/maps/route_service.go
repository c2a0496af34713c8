// README: RouteService estimates driving distance and duration between two coordinates.
package maps

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"airporter/internal/types"
)

const (
	// Floors for any estimate: zero-length or zero-time routes are
	// clamped, never rejected.
	MinDistanceKm  = 0.1
	MinDurationMin = 1.0

	// coordEpsilon is the per-axis tolerance below which two coordinates
	// count as the same place.
	coordEpsilon = 1e-4

	// fallbackMinPerKm derives duration from distance when the routing
	// service is unavailable (assumed ~30 km/h average).
	fallbackMinPerKm = 2.0
)

// RouteEstimate is a driving estimate between two points.
type RouteEstimate struct {
	DistanceKm  float64
	DurationMin float64
}

type directionsAPI interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// RouteService queries the Google Directions API with a great-circle
// fallback, so Estimate always produces a usable value.
type RouteService struct {
	api     directionsAPI
	timeout time.Duration
	logger  *zap.Logger
}

func NewRouteService(client *maps.Client, timeout time.Duration, logger *zap.Logger) *RouteService {
	return &RouteService{api: client, timeout: timeout, logger: logger}
}

// NewMapsClient creates the shared Google Maps client for geocoding and routing.
func NewMapsClient(apiKey string) (*maps.Client, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

// Estimate returns the driving distance and duration between from and to.
// Unresolved or coincident coordinates short-circuit to the minimum estimate
// without touching the routing service. Routing failures degrade to a
// haversine estimate and are invisible to the caller.
func (s *RouteService) Estimate(ctx context.Context, from, to types.Coordinate) RouteEstimate {
	if from.IsZero() || to.IsZero() || coincident(from, to) {
		return RouteEstimate{DistanceKm: MinDistanceKm, DurationMin: MinDurationMin}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	r := &maps.DirectionsRequest{
		Origin:      latLng(from),
		Destination: latLng(to),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := s.api.Directions(ctx, r)
	if err != nil || len(routes) == 0 || len(routes[0].Legs) == 0 {
		if err != nil {
			s.logger.Warn("directions lookup failed, using great-circle fallback", zap.Error(err))
		}
		return s.greatCircleEstimate(from, to)
	}

	leg := routes[0].Legs[0]
	return clampEstimate(RouteEstimate{
		DistanceKm:  float64(leg.Distance.Meters) / 1000.0,
		DurationMin: leg.Duration.Minutes(),
	})
}

func (s *RouteService) greatCircleEstimate(from, to types.Coordinate) RouteEstimate {
	d := haversineKm(from.Lat, from.Lng, to.Lat, to.Lng)
	return clampEstimate(RouteEstimate{
		DistanceKm:  d,
		DurationMin: d * fallbackMinPerKm,
	})
}

func clampEstimate(e RouteEstimate) RouteEstimate {
	if e.DistanceKm < MinDistanceKm {
		e.DistanceKm = MinDistanceKm
	}
	if e.DurationMin < MinDurationMin {
		e.DurationMin = MinDurationMin
	}
	return e
}

func coincident(a, b types.Coordinate) bool {
	return math.Abs(a.Lat-b.Lat) < coordEpsilon && math.Abs(a.Lng-b.Lng) < coordEpsilon
}

func latLng(c types.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}
