// README: Wizard service sequences geocoding, routing, matching, pricing, and submission.
package wizard

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"airporter/internal/maps"
	"airporter/internal/modules/booking"
	"airporter/internal/modules/matching"
	"airporter/internal/modules/pricing"
	"airporter/internal/types"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrIncompleteItinerary = errors.New("both addresses, date, and time are required")
	ErrNoDriverSelected    = errors.New("no driver selected")
	ErrUnknownDriver       = errors.New("driver is not in the current candidate list")
	ErrIncompleteContact   = errors.New("name, phone, and payment method are required")
	ErrWrongStep           = errors.New("operation not valid at this step")
	ErrTerminal            = errors.New("booking already completed")
)

// Geocoder resolves a free-text address; nil means resolution pending.
type Geocoder interface {
	Resolve(ctx context.Context, address string) *types.Coordinate
}

// RouteEstimator produces a driving estimate; it never fails.
type RouteEstimator interface {
	Estimate(ctx context.Context, from, to types.Coordinate) maps.RouteEstimate
}

// DriverMatcher runs the candidate cascade.
type DriverMatcher interface {
	FindCandidates(ctx context.Context, vehicleType string) ([]matching.Candidate, error)
}

// Submitter persists the finalized booking.
type Submitter interface {
	Submit(ctx context.Context, r *booking.Record) (types.ID, error)
}

// SnapshotStore is the draft persistence port.
type SnapshotStore interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context, id types.ID) (Snapshot, bool, error)
	Delete(ctx context.Context, id types.ID) error
}

type Service struct {
	snapshots SnapshotStore
	geocoder  Geocoder
	routes    RouteEstimator
	matcher   DriverMatcher
	submitter Submitter
	logger    *zap.Logger
}

func NewService(
	snapshots SnapshotStore,
	geocoder Geocoder,
	routes RouteEstimator,
	matcher DriverMatcher,
	submitter Submitter,
	logger *zap.Logger,
) *Service {
	return &Service{
		snapshots: snapshots,
		geocoder:  geocoder,
		routes:    routes,
		matcher:   matcher,
		submitter: submitter,
		logger:    logger,
	}
}

// Begin opens a fresh session at the itinerary step.
func (s *Service) Begin(ctx context.Context) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:        types.ID(uuid.NewString()),
		Step:      StepItinerary,
		Request:   TransferRequest{PassengerCount: 1},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Resume loads a draft session from the snapshot store.
func (s *Service) Resume(ctx context.Context, id types.ID) (*Session, error) {
	snap, ok, err := s.snapshots.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionNotFound
	}
	return fromSnapshot(snap), nil
}

// ItineraryUpdate carries step-one edits. Zero-valued fields are applied as
// given; this is a full replacement of the editable fields, not a patch.
type ItineraryUpdate struct {
	FromAddress    string
	ToAddress      string
	PickupDate     string
	PickupTime     string
	PassengerCount int
	VehicleType    string
}

// UpdateItinerary applies step-one edits. Changing either address drops its
// resolved coordinate and zeroes the route estimate, so a stale distance is
// never shown against new input.
func (s *Service) UpdateItinerary(ctx context.Context, sess *Session, in ItineraryUpdate) error {
	if sess.Step != StepItinerary {
		return ErrWrongStep
	}

	if in.FromAddress != sess.Request.FromAddress {
		sess.Request.FromCoord = types.Coordinate{}
		sess.Route = maps.RouteEstimate{}
	}
	if in.ToAddress != sess.Request.ToAddress {
		sess.Request.ToCoord = types.Coordinate{}
		sess.Route = maps.RouteEstimate{}
	}

	sess.Request.FromAddress = in.FromAddress
	sess.Request.ToAddress = in.ToAddress
	sess.Request.PickupDate = in.PickupDate
	sess.Request.PickupTime = in.PickupTime
	if in.PassengerCount > 0 {
		sess.Request.PassengerCount = in.PassengerCount
	}
	sess.Request.VehicleType = in.VehicleType

	return s.save(ctx, sess)
}

// Next advances the wizard one step after running the entry work and the
// step's validation gate. Each network call completes or fails before the
// next begins; nothing is raced.
func (s *Service) Next(ctx context.Context, sess *Session) error {
	switch sess.Step {
	case StepItinerary:
		return s.advanceToDriver(ctx, sess)
	case StepDriver:
		return s.advanceToConfirm(ctx, sess)
	case StepConfirm:
		return s.submit(ctx, sess)
	case StepDone:
		return ErrTerminal
	default:
		return ErrWrongStep
	}
}

// Back moves one step backwards. Leaving the confirmation step clears the
// selected candidate and every vehicle field derived from it.
func (s *Service) Back(ctx context.Context, sess *Session) error {
	switch sess.Step {
	case StepDriver:
		sess.Step = StepItinerary
	case StepConfirm:
		sess.Selected = nil
		sess.Quote = types.Money{}
		sess.Step = StepDriver
	default:
		return ErrWrongStep
	}
	return s.save(ctx, sess)
}

// SelectDriver picks a candidate from the current list.
func (s *Service) SelectDriver(ctx context.Context, sess *Session, driverID types.ID) error {
	if sess.Step != StepDriver {
		return ErrWrongStep
	}
	for i := range sess.Candidates {
		if sess.Candidates[i].ID == driverID {
			c := sess.Candidates[i]
			sess.Selected = &c
			return s.save(ctx, sess)
		}
	}
	return ErrUnknownDriver
}

// ChangeVehicleType switches the requested class while choosing a driver.
// The previous candidate list and selection are incompatible with the new
// class, so both are discarded and the cascade runs again.
func (s *Service) ChangeVehicleType(ctx context.Context, sess *Session, vehicleType string) error {
	switch sess.Step {
	case StepItinerary:
		sess.Request.VehicleType = vehicleType
		return s.save(ctx, sess)
	case StepDriver:
		sess.Request.VehicleType = vehicleType
		sess.Selected = nil
		sess.Quote = types.Money{}
		candidates, err := s.matcher.FindCandidates(ctx, vehicleType)
		if err != nil {
			return err
		}
		sess.Candidates = candidates
		return s.save(ctx, sess)
	default:
		return ErrWrongStep
	}
}

// SetContact records the passenger's name and phone for confirmation.
func (s *Service) SetContact(ctx context.Context, sess *Session, contact ContactInfo) error {
	if sess.Step != StepConfirm {
		return ErrWrongStep
	}
	sess.Contact = contact
	return s.save(ctx, sess)
}

// SetPaymentMethod records the payment-method choice.
func (s *Service) SetPaymentMethod(ctx context.Context, sess *Session, method string) error {
	if sess.Step != StepConfirm {
		return ErrWrongStep
	}
	sess.PaymentMethod = method
	return s.save(ctx, sess)
}

func (s *Service) advanceToDriver(ctx context.Context, sess *Session) error {
	req := &sess.Request
	if req.FromAddress == "" || req.ToAddress == "" || req.PickupDate == "" || req.PickupTime == "" {
		return ErrIncompleteItinerary
	}

	// Resolve whichever coordinates are still missing. Failed resolution
	// is non-fatal: the route estimator treats unresolved points as the
	// minimum estimate.
	if req.FromCoord.IsZero() {
		if c := s.geocoder.Resolve(ctx, req.FromAddress); c != nil {
			req.FromCoord = *c
		}
	}
	if req.ToCoord.IsZero() {
		if c := s.geocoder.Resolve(ctx, req.ToAddress); c != nil {
			req.ToCoord = *c
		}
	}

	sess.Route = s.routes.Estimate(ctx, req.FromCoord, req.ToCoord)

	candidates, err := s.matcher.FindCandidates(ctx, req.VehicleType)
	if err != nil {
		return err
	}
	sess.Candidates = candidates
	sess.Selected = nil
	sess.Step = StepDriver
	return s.save(ctx, sess)
}

func (s *Service) advanceToConfirm(ctx context.Context, sess *Session) error {
	if sess.Selected == nil {
		return ErrNoDriverSelected
	}

	p := sess.Selected.Pricing
	total := pricing.Fare(sess.Route.DistanceKm, p.PerKm, p.BasicPrice, p.Surcharge)
	if total == 0 {
		// Fare failed closed; recompute from the documented default so
		// the quote is never garbage.
		s.logger.Warn("fare computation failed closed, recomputing with default profile",
			zap.String("vehicle_type", sess.Request.VehicleType),
		)
		d := pricing.DefaultProfile(sess.Request.VehicleType)
		total = pricing.Fare(sess.Route.DistanceKm, d.PerKm, d.BasicPrice, d.Surcharge)
	}
	sess.Quote = types.Money{Amount: int64(math.Round(total)), Currency: "IDR"}
	sess.Step = StepConfirm
	return s.save(ctx, sess)
}

func (s *Service) submit(ctx context.Context, sess *Session) error {
	if sess.Contact.Name == "" || sess.Contact.Phone == "" || sess.PaymentMethod == "" {
		return ErrIncompleteContact
	}
	if sess.Selected == nil {
		return ErrNoDriverSelected
	}

	rec := &booking.Record{
		CustomerName:   sess.Contact.Name,
		CustomerPhone:  sess.Contact.Phone,
		FromAddress:    sess.Request.FromAddress,
		ToAddress:      sess.Request.ToAddress,
		FromCoord:      sess.Request.FromCoord,
		ToCoord:        sess.Request.ToCoord,
		PickupDate:     sess.Request.PickupDate,
		PickupTime:     sess.Request.PickupTime,
		PassengerCount: sess.Request.PassengerCount,
		VehicleType:    sess.Request.VehicleType,
		DriverID:       sess.Selected.ID,
		DriverName:     sess.Selected.Name,
		VehicleDesc:    sess.Selected.VehicleDescription,
		LicensePlate:   sess.Selected.LicensePlate,
		DistanceKm:     sess.Route.DistanceKm,
		DurationMin:    sess.Route.DurationMin,
		Fare:           sess.Quote,
		PaymentMethod:  sess.PaymentMethod,
	}

	id, err := s.submitter.Submit(ctx, rec)
	if err != nil {
		// Stay at confirmation; the failure is retryable and no partial
		// record exists.
		return err
	}

	sess.BookingID = id
	sess.Step = StepDone
	return s.save(ctx, sess)
}

func (s *Service) save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()
	return s.snapshots.Save(ctx, sess.snapshot())
}
