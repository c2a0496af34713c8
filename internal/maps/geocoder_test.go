package maps

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

type fakeGeocode struct {
	results []maps.GeocodingResult
	err     error
	calls   int
}

func (f *fakeGeocode) Geocode(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	f.calls++
	return f.results, f.err
}

func newTestGeocoder(api geocodeAPI) *Geocoder {
	return &Geocoder{api: api, timeout: time.Second, logger: zap.NewNop()}
}

func TestResolve_EmptyInputReturnsNilWithoutLookup(t *testing.T) {
	api := &fakeGeocode{}
	g := newTestGeocoder(api)

	for _, addr := range []string{"", "   ", "\t"} {
		if got := g.Resolve(context.Background(), addr); got != nil {
			t.Errorf("Resolve(%q) = %v, want nil", addr, got)
		}
	}
	if api.calls != 0 {
		t.Errorf("geocode API called %d times for empty input, want 0", api.calls)
	}
}

func TestResolve_LookupFailureReturnsNil(t *testing.T) {
	g := newTestGeocoder(&fakeGeocode{err: errors.New("OVER_QUERY_LIMIT")})
	if got := g.Resolve(context.Background(), "Bandara Soekarno-Hatta"); got != nil {
		t.Errorf("Resolve() = %v, want nil on failure", got)
	}
}

func TestResolve_EmptyResultSetReturnsNil(t *testing.T) {
	g := newTestGeocoder(&fakeGeocode{})
	if got := g.Resolve(context.Background(), "jalan yang tidak ada 999"); got != nil {
		t.Errorf("Resolve() = %v, want nil on empty result set", got)
	}
}

func TestResolve_TakesFirstResult(t *testing.T) {
	api := &fakeGeocode{results: []maps.GeocodingResult{
		{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: -6.1256, Lng: 106.6559}}},
		{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: -7.0, Lng: 110.0}}},
	}}
	g := newTestGeocoder(api)

	got := g.Resolve(context.Background(), "Bandara Soekarno-Hatta")
	if got == nil {
		t.Fatal("Resolve() = nil, want coordinate")
	}
	if got.Lat != -6.1256 || got.Lng != 106.6559 {
		t.Errorf("Resolve() = %+v, want first result", got)
	}
	if got.IsZero() {
		t.Error("resolved coordinate must not read as unresolved")
	}
}
