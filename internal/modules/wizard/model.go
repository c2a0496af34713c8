// README: Wizard steps, transfer request, and the serializable draft snapshot.
package wizard

import (
	"time"

	"airporter/internal/maps"
	"airporter/internal/modules/matching"
	"airporter/internal/types"
)

// Step is one of the four ordered wizard states.
type Step string

const (
	StepItinerary Step = "itinerary"        // addresses, schedule, vehicle type
	StepDriver    Step = "driver_selection" // route shown, candidate picked
	StepConfirm   Step = "confirmation"     // summary, contact, payment method
	StepDone      Step = "done"             // booking persisted
)

// TransferRequest is the passenger's input, mutable while the wizard is in
// StepItinerary and frozen once it reaches confirmation.
type TransferRequest struct {
	FromAddress    string           `json:"from_address"`
	ToAddress      string           `json:"to_address"`
	FromCoord      types.Coordinate `json:"from_coord"`
	ToCoord        types.Coordinate `json:"to_coord"`
	PickupDate     string           `json:"pickup_date"` // YYYY-MM-DD
	PickupTime     string           `json:"pickup_time"` // HH:MM
	PassengerCount int              `json:"passenger_count"`
	VehicleType    string           `json:"vehicle_type"`
}

// ContactInfo is collected at the confirmation step.
type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Session is the in-memory state of one booking attempt. A session owns its
// request, route estimate, candidate list, and quote exclusively; nothing
// here is shared between concurrent sessions.
type Session struct {
	ID            types.ID
	Step          Step
	Request       TransferRequest
	Route         maps.RouteEstimate
	Candidates    []matching.Candidate
	Selected      *matching.Candidate
	Quote         types.Money
	Contact       ContactInfo
	PaymentMethod string
	BookingID     types.ID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Snapshot is the serializable form of a session, persisted through the
// SnapshotStore port so a draft survives tab switches and reconnects.
type Snapshot struct {
	ID            types.ID             `json:"id"`
	Step          Step                 `json:"step"`
	Request       TransferRequest      `json:"request"`
	DistanceKm    float64              `json:"distance_km"`
	DurationMin   float64              `json:"duration_min"`
	Candidates    []matching.Candidate `json:"candidates,omitempty"`
	Selected      *matching.Candidate  `json:"selected,omitempty"`
	QuoteAmount   int64                `json:"quote_amount"`
	QuoteCurrency string               `json:"quote_currency"`
	Contact       ContactInfo          `json:"contact"`
	PaymentMethod string               `json:"payment_method"`
	BookingID     types.ID             `json:"booking_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{
		ID:            s.ID,
		Step:          s.Step,
		Request:       s.Request,
		DistanceKm:    s.Route.DistanceKm,
		DurationMin:   s.Route.DurationMin,
		Candidates:    s.Candidates,
		Selected:      s.Selected,
		QuoteAmount:   s.Quote.Amount,
		QuoteCurrency: s.Quote.Currency,
		Contact:       s.Contact,
		PaymentMethod: s.PaymentMethod,
		BookingID:     s.BookingID,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func fromSnapshot(snap Snapshot) *Session {
	return &Session{
		ID:            snap.ID,
		Step:          snap.Step,
		Request:       snap.Request,
		Route:         maps.RouteEstimate{DistanceKm: snap.DistanceKm, DurationMin: snap.DurationMin},
		Candidates:    snap.Candidates,
		Selected:      snap.Selected,
		Quote:         types.Money{Amount: snap.QuoteAmount, Currency: snap.QuoteCurrency},
		Contact:       snap.Contact,
		PaymentMethod: snap.PaymentMethod,
		BookingID:     snap.BookingID,
		CreatedAt:     snap.CreatedAt,
		UpdatedAt:     snap.UpdatedAt,
	}
}
