// README: Matching service unit tests covering the two-tier cascade and simulated proximity.
package matching

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"go.uber.org/zap"

	"airporter/internal/config"
	"airporter/internal/modules/pricing"
	"airporter/internal/types"
)

// ---------------------------------------------------------------------------
// In-memory mocks
// ---------------------------------------------------------------------------

type mockSource struct {
	mu          sync.Mutex
	active      []DriverRow
	idle        []DriverRow
	activeCalls int
	idleCalls   int
	idleLimit   int
	activeErr   error
	idleErr     error
}

func (m *mockSource) ActiveByVehicleType(_ context.Context, _ string) ([]DriverRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeCalls++
	if m.activeErr != nil {
		return nil, m.activeErr
	}
	cp := make([]DriverRow, len(m.active))
	copy(cp, m.active)
	return cp, nil
}

func (m *mockSource) IdleAvailable(_ context.Context, _ string, limit int) ([]DriverRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idleCalls++
	m.idleLimit = limit
	if m.idleErr != nil {
		return nil, m.idleErr
	}
	cp := make([]DriverRow, len(m.idle))
	copy(cp, m.idle)
	return cp, nil
}

type mockPricing struct {
	mu    sync.Mutex
	calls int
}

func (m *mockPricing) ProfileFor(_ context.Context, vehicleType string) pricing.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return pricing.DefaultProfile(vehicleType)
}

func makeRows(n int, vehicleType string) []DriverRow {
	rows := make([]DriverRow, n)
	for i := range rows {
		rows[i] = DriverRow{
			ID:                 types.ID(fmt.Sprintf("driver_%d", i)),
			Name:               fmt.Sprintf("Driver %d", i),
			Phone:              fmt.Sprintf("+62812%07d", i),
			VehicleType:        vehicleType,
			VehicleDescription: "Toyota Innova",
			LicensePlate:       fmt.Sprintf("B %d XY", 1000+i),
		}
	}
	return rows
}

func newTestService(src *mockSource, pr *mockPricing) *Service {
	cfg := config.MatchingConfig{IdlePoolLimit: 5, SimMinKm: 1.0, SimMaxKm: 6.0}
	return NewService(src, pr, cfg, zap.NewNop())
}

// ---------------------------------------------------------------------------
// Tier 1: active-ride cascade
// ---------------------------------------------------------------------------

func TestFindCandidates_ActiveTierWins(t *testing.T) {
	src := &mockSource{active: makeRows(3, "van"), idle: makeRows(5, "van")}
	pr := &mockPricing{}
	svc := newTestService(src, pr)

	got, err := svc.FindCandidates(context.Background(), "van")
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 active candidates, got %d", len(got))
	}
	if src.idleCalls != 0 {
		t.Errorf("idle pool consulted %d times although tier 1 matched", src.idleCalls)
	}
	// One profile resolution per active match.
	if pr.calls != 3 {
		t.Errorf("profile resolved %d times, want 3 (one per match)", pr.calls)
	}
}

func TestFindCandidates_PreservesReturnOrder(t *testing.T) {
	src := &mockSource{active: makeRows(4, "sedan")}
	svc := newTestService(src, &mockPricing{})

	got, err := svc.FindCandidates(context.Background(), "sedan")
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	for i, c := range got {
		want := types.ID(fmt.Sprintf("driver_%d", i))
		if c.ID != want {
			t.Errorf("candidate %d = %s, want %s (raw query order must be kept)", i, c.ID, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Tier 2: idle pool fallthrough
// ---------------------------------------------------------------------------

func TestFindCandidates_FallsThroughToIdlePool(t *testing.T) {
	src := &mockSource{idle: makeRows(2, "van")}
	pr := &mockPricing{}
	svc := newTestService(src, pr)

	got, err := svc.FindCandidates(context.Background(), "van")
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 idle candidates, got %d", len(got))
	}
	if src.activeCalls != 1 || src.idleCalls != 1 {
		t.Errorf("expected one call per tier, got active=%d idle=%d", src.activeCalls, src.idleCalls)
	}
	if src.idleLimit != 5 {
		t.Errorf("idle pool queried with limit %d, want configured 5", src.idleLimit)
	}
	// Idle tier shares a single profile resolution.
	if pr.calls != 1 {
		t.Errorf("profile resolved %d times for idle tier, want 1", pr.calls)
	}
}

func TestFindCandidates_BothTiersEmpty(t *testing.T) {
	svc := newTestService(&mockSource{}, &mockPricing{})

	got, err := svc.FindCandidates(context.Background(), "van")
	if err != nil {
		t.Fatalf("empty pools must not be an error, got %v", err)
	}
	if got == nil {
		t.Fatal("expected empty non-nil slice")
	}
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
}

func TestFindCandidates_StoreErrorsPropagate(t *testing.T) {
	src := &mockSource{activeErr: errors.New("db down")}
	svc := newTestService(src, &mockPricing{})
	if _, err := svc.FindCandidates(context.Background(), "van"); err == nil {
		t.Fatal("expected error from active tier")
	}

	src = &mockSource{idleErr: errors.New("db down")}
	svc = newTestService(src, &mockPricing{})
	if _, err := svc.FindCandidates(context.Background(), "van"); err == nil {
		t.Fatal("expected error from idle tier")
	}
}

// ---------------------------------------------------------------------------
// Simulated proximity
// ---------------------------------------------------------------------------

func TestFindCandidates_SimulatedProximityWithinBounds(t *testing.T) {
	src := &mockSource{active: makeRows(50, "van")}
	svc := newTestService(src, &mockPricing{})

	got, err := svc.FindCandidates(context.Background(), "van")
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	for _, c := range got {
		if c.SimulatedDistanceKm < 1.0 || c.SimulatedDistanceKm > 6.0 {
			t.Errorf("simulated distance %v outside [1.0, 6.0]", c.SimulatedDistanceKm)
		}
		if c.SimulatedEtaMin < 1 {
			t.Errorf("simulated ETA %d below 1 minute", c.SimulatedEtaMin)
		}
		want := int(math.Ceil(c.SimulatedDistanceKm * 2))
		if c.SimulatedEtaMin != want {
			t.Errorf("ETA %d inconsistent with distance %v (want %d)", c.SimulatedEtaMin, c.SimulatedDistanceKm, want)
		}
	}
}

func TestFindCandidates_CandidatesCarryPricing(t *testing.T) {
	src := &mockSource{idle: makeRows(3, "van")}
	svc := newTestService(src, &mockPricing{})

	got, err := svc.FindCandidates(context.Background(), "van")
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	for _, c := range got {
		if c.Pricing.PerKm == 0 || c.Pricing.BasicPrice == 0 {
			t.Errorf("candidate %s has no pricing profile: %+v", c.ID, c.Pricing)
		}
	}
}
