// README: Kafka publisher for booking confirmation events.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"airporter/internal/modules/booking"
)

// ConfirmationEvent is consumed by the notification service to send the
// passenger their booking confirmation.
type ConfirmationEvent struct {
	BookingID     string    `json:"booking_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	PickupDate    string    `json:"pickup_date"`
	PickupTime    string    `json:"pickup_time"`
	VehicleType   string    `json:"vehicle_type"`
	DriverName    string    `json:"driver_name"`
	FareAmount    int64     `json:"fare_amount"`
	FareCurrency  string    `json:"fare_currency"`
	CreatedAt     time.Time `json:"created_at"`
}

type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Publisher{writer: writer, logger: logger}
}

// BookingConfirmed publishes the confirmation event. Delivery failures are
// logged and dropped; the booking itself is already persisted.
func (p *Publisher) BookingConfirmed(ctx context.Context, r *booking.Record) {
	evt := ConfirmationEvent{
		BookingID:     string(r.ID),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		PickupDate:    r.PickupDate,
		PickupTime:    r.PickupTime,
		VehicleType:   r.VehicleType,
		DriverName:    r.DriverName,
		FareAmount:    r.Fare.Amount,
		FareCurrency:  r.Fare.Currency,
		CreatedAt:     r.CreatedAt,
	}

	data, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("failed to encode confirmation event", zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(evt.BookingID),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish confirmation event",
			zap.String("booking_id", evt.BookingID),
			zap.Error(err),
		)
	}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
