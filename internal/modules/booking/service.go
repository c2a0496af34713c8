// README: Booking submitter with a typed retry policy and fire-and-forget confirmation dispatch.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"airporter/internal/types"
)

var (
	// ErrInvalidRecord marks a submission that can never succeed; the
	// retry loop short-circuits on it.
	ErrInvalidRecord = errors.New("invalid booking record")
)

// RetryPolicy bounds the submission retry loop. It is passed in explicitly
// rather than hidden inside the store call.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
}

// Inserter is the persistence contract for finalized records.
type Inserter interface {
	Insert(ctx context.Context, r *Record) error
}

// Notifier dispatches booking confirmations. It is fire-and-forget: the
// submitter never waits on it for correctness.
type Notifier interface {
	BookingConfirmed(ctx context.Context, r *Record)
}

type Service struct {
	store    Inserter
	notifier Notifier
	policy   RetryPolicy
	logger   *zap.Logger
}

func NewService(store Inserter, notifier Notifier, policy RetryPolicy, logger *zap.Logger) *Service {
	return &Service{store: store, notifier: notifier, policy: policy, logger: logger}
}

// Submit validates and persists the record, retrying transient store errors
// under the policy. On failure no partial record exists and the caller keeps
// the wizard at the confirmation step.
func (s *Service) Submit(ctx context.Context, r *Record) (types.ID, error) {
	if err := validate(r); err != nil {
		return "", err
	}

	r.ID = types.ID(uuid.NewString())
	r.Status = StatusPending
	r.CreatedAt = time.Now().UTC()

	operation := func() error {
		err := s.store.Insert(ctx, r)
		if errors.Is(err, ErrInvalidRecord) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.policy.InitialBackoff
	policy := backoff.WithContext(
		backoff.WithMaxRetries(b, uint64(s.policy.MaxAttempts-1)),
		ctx,
	)

	if err := backoff.Retry(operation, policy); err != nil {
		s.logger.Error("booking submission failed",
			zap.String("booking_id", string(r.ID)),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Info("booking submitted",
		zap.String("booking_id", string(r.ID)),
		zap.String("vehicle_type", r.VehicleType),
		zap.Int64("fare", r.Fare.Amount),
	)

	// Confirmation dispatch is decoupled from the submission result.
	go s.notifier.BookingConfirmed(context.WithoutCancel(ctx), r)

	return r.ID, nil
}

func validate(r *Record) error {
	if r.CustomerName == "" || r.CustomerPhone == "" || r.PaymentMethod == "" ||
		r.DriverID == "" || r.FromAddress == "" || r.ToAddress == "" {
		return ErrInvalidRecord
	}
	return nil
}
