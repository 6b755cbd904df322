package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nsqio/go-nsq"
	"go.uber.org/zap"
)

// Booking lifecycle event types consumed by notification services.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingExpired   = "booking.expired"
)

type BookingEvent struct {
	Type      string    `json:"type"`
	BookingID uuid.UUID `json:"booking_id"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher sends booking lifecycle events to NSQ.
type Publisher interface {
	PublishBookingEvent(eventType string, bookingID uuid.UUID, status string) error
	Stop()
}

type nsqPublisher struct {
	producer *nsq.Producer
	topic    string
	log      *zap.Logger
}

func NewPublisher(address, topic string, log *zap.Logger) (Publisher, error) {
	config := nsq.NewConfig()
	producer, err := nsq.NewProducer(address, config)
	if err != nil {
		return nil, fmt.Errorf("create nsq producer: %w", err)
	}

	return &nsqPublisher{
		producer: producer,
		topic:    topic,
		log:      log.With(zap.String("component", "events")),
	}, nil
}

func (p *nsqPublisher) PublishBookingEvent(eventType string, bookingID uuid.UUID, status string) error {
	event := BookingEvent{
		Type:      eventType,
		BookingID: bookingID,
		Status:    status,
		Timestamp: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	if err := p.producer.Publish(p.topic, payload); err != nil {
		p.log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("event_type", eventType),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("publish booking event %s: %w", eventType, err)
	}

	return nil
}

func (p *nsqPublisher) Stop() {
	p.producer.Stop()
}

// noopPublisher is used when NSQ is disabled in config.
type noopPublisher struct{}

func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishBookingEvent(string, uuid.UUID, string) error { return nil }
func (noopPublisher) Stop()                                               {}
