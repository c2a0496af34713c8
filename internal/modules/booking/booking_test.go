// README: Submitter tests: validation short-circuit, bounded retries, confirmation dispatch.
package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"airporter/internal/types"
)

type mockInserter struct {
	mu       sync.Mutex
	calls    int
	failures int // fail this many leading calls, then succeed
	err      error
}

func (m *mockInserter) Insert(_ context.Context, _ *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.calls <= m.failures {
		return m.err
	}
	return nil
}

func (m *mockInserter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockNotifier struct {
	confirmed chan *Record
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{confirmed: make(chan *Record, 1)}
}

func (m *mockNotifier) BookingConfirmed(_ context.Context, r *Record) {
	m.confirmed <- r
}

func validRecord() *Record {
	return &Record{
		CustomerName:  "Andi",
		CustomerPhone: "+62811111",
		FromAddress:   "Bandara Soekarno-Hatta Terminal 3",
		ToAddress:     "Hotel Indonesia Kempinski, Jakarta",
		PickupDate:    "2026-09-14",
		PickupTime:    "09:30",
		VehicleType:   "van",
		DriverID:      "drv_1",
		DriverName:    "Budi",
		DistanceKm:    20,
		DurationMin:   35,
		Fare:          types.Money{Amount: 154000, Currency: "IDR"},
		PaymentMethod: "cash",
	}
}

func testPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond}
}

func TestSubmit_InvalidRecordNeverHitsStore(t *testing.T) {
	tests := []struct {
		name  string
		strip func(*Record)
	}{
		{"missing customer name", func(r *Record) { r.CustomerName = "" }},
		{"missing customer phone", func(r *Record) { r.CustomerPhone = "" }},
		{"missing payment method", func(r *Record) { r.PaymentMethod = "" }},
		{"missing driver", func(r *Record) { r.DriverID = "" }},
		{"missing pickup address", func(r *Record) { r.FromAddress = "" }},
		{"missing dropoff address", func(r *Record) { r.ToAddress = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockInserter{}
			svc := NewService(store, newMockNotifier(), testPolicy(), zap.NewNop())

			rec := validRecord()
			tt.strip(rec)

			id, err := svc.Submit(context.Background(), rec)
			if !errors.Is(err, ErrInvalidRecord) {
				t.Fatalf("Submit = %v, want ErrInvalidRecord", err)
			}
			if id != "" {
				t.Errorf("id = %q, want empty on rejection", id)
			}
			if store.callCount() != 0 {
				t.Errorf("store hit %d times for invalid record, want 0", store.callCount())
			}
		})
	}
}

func TestSubmit_AssignsIDStatusAndTimestamp(t *testing.T) {
	svc := NewService(&mockInserter{}, newMockNotifier(), testPolicy(), zap.NewNop())

	rec := validRecord()
	id, err := svc.Submit(context.Background(), rec)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id == "" || rec.ID != id {
		t.Errorf("id = %q, record id = %q, want matching non-empty", id, rec.ID)
	}
	if rec.Status != StatusPending {
		t.Errorf("status = %q, want %q", rec.Status, StatusPending)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestSubmit_RetriesTransientFailures(t *testing.T) {
	store := &mockInserter{failures: 2, err: errors.New("connection reset")}
	svc := NewService(store, newMockNotifier(), testPolicy(), zap.NewNop())

	id, err := svc.Submit(context.Background(), validRecord())
	if err != nil {
		t.Fatalf("Submit after recovery: %v", err)
	}
	if id == "" {
		t.Error("expected booking id after successful retry")
	}
	if store.callCount() != 3 {
		t.Errorf("store hit %d times, want 3 (two failures, one success)", store.callCount())
	}
}

func TestSubmit_GivesUpAfterMaxAttempts(t *testing.T) {
	store := &mockInserter{failures: 100, err: errors.New("connection reset")}
	notifier := newMockNotifier()
	svc := NewService(store, notifier, testPolicy(), zap.NewNop())

	id, err := svc.Submit(context.Background(), validRecord())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if id != "" {
		t.Errorf("id = %q, want empty on failure", id)
	}
	if store.callCount() != 3 {
		t.Errorf("store hit %d times, want exactly MaxAttempts (3)", store.callCount())
	}

	select {
	case <-notifier.confirmed:
		t.Error("confirmation dispatched for a failed submission")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubmit_DispatchesConfirmationOnSuccess(t *testing.T) {
	notifier := newMockNotifier()
	svc := NewService(&mockInserter{}, notifier, testPolicy(), zap.NewNop())

	rec := validRecord()
	if _, err := svc.Submit(context.Background(), rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	select {
	case got := <-notifier.confirmed:
		if got.ID != rec.ID {
			t.Errorf("confirmed record %q, want %q", got.ID, rec.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("confirmation never dispatched")
	}
}
