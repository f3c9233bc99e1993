// Package events publishes order lifecycle events.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Event types
const (
	TypeOrderCreated  = "order.created"
	TypeOrdersCleared = "orders.cleared"
)

// Event is the message body published for every order change. Card data is
// never part of an event.
type Event struct {
	Type       string    `json:"type"`
	UserEmail  string    `json:"userEmail"`
	TrackingID string    `json:"trackingId,omitempty"`
	CarID      string    `json:"carId,omitempty"`
	StartDate  string    `json:"startDate,omitempty"`
	EndDate    string    `json:"endDate,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// MessageWriter is the part of *kafka.Writer used by KafkaPublisher
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic keyed by user email, so every
// event of a renter lands on the same partition
type KafkaPublisher struct {
	Writer MessageWriter
}

// NewKafkaPublisher creates a publisher writing to topic on brokers
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		Writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
	}
}

// Publish writes e to the topic
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.UserEmail),
		Value: body,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	})
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

// LogPublisher logs events instead of publishing them
type LogPublisher struct{}

// Publish logs e
func (LogPublisher) Publish(ctx context.Context, e Event) error {
	zap.S().Infow("event", "type", e.Type, "userEmail", e.UserEmail, "trackingId", e.TrackingID)
	return nil
}

// Close does nothing
func (LogPublisher) Close() error {
	return nil
}

// New returns a KafkaPublisher when brokers are configured and a LogPublisher otherwise
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return LogPublisher{}
	}
	return NewKafkaPublisher(brokers, topic)
}
