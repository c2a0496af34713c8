// README: Geocoder resolves free-text addresses into coordinates.
package maps

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"airporter/internal/types"
)

type geocodeAPI interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// Geocoder wraps the Google Geocoding API. A nil result is not an error:
// callers treat it as "resolution pending" and may retry or fall back to
// manual pin placement.
type Geocoder struct {
	api     geocodeAPI
	timeout time.Duration
	logger  *zap.Logger
}

func NewGeocoder(client *maps.Client, timeout time.Duration, logger *zap.Logger) *Geocoder {
	return &Geocoder{api: client, timeout: timeout, logger: logger}
}

// Resolve turns a free-text address into a coordinate. Empty input, lookup
// failure, and an empty result set all yield nil. No retry is performed here.
func (g *Geocoder) Resolve(ctx context.Context, address string) *types.Coordinate {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	results, err := g.api.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		g.logger.Warn("geocode lookup failed", zap.String("address", address), zap.Error(err))
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	loc := results[0].Geometry.Location
	return &types.Coordinate{Lat: loc.Lat, Lng: loc.Lng}
}
