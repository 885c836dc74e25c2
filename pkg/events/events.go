package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"paradisian/pkg/logger"
)

// Activity event types published to the analytics stream.
const (
	TypeLogin            = "user.login"
	TypeLogout           = "user.logout"
	TypeRegistered       = "user.registered"
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
	TypeRoomAdded        = "room.added"
	TypeRoomUpdated      = "room.updated"
	TypeRoomDeleted      = "room.deleted"
)

type Event struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Detail    map[string]string `json:"detail,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Publisher emits user-activity events to Kafka. It is strictly
// fire-and-forget: publishing never blocks a page render and failures are
// logged and dropped. A Publisher with no brokers configured is a no-op.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewPublisher(brokers []string, topic string, log *logger.Logger) *Publisher {
	if len(brokers) == 0 {
		log.Info("Activity events disabled, no Kafka brokers configured")
		return &Publisher{log: log}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		BatchTimeout: 100 * time.Millisecond,
	}
	log.Info("Activity events enabled", "brokers", brokers, "topic", topic)
	return &Publisher{writer: writer, log: log}
}

// Publish emits one event keyed by the acting user, so a user's activity
// stays ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, eventType, key string, detail map[string]string) {
	if p.writer == nil {
		return
	}

	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to encode activity event", "type", eventType, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(event.ID)},
			{Key: "event-type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Warn("Failed to publish activity event", "type", eventType, "error", err)
	}
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
