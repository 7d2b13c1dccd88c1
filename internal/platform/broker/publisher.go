package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"posbusRelay/internal/modules/relay/domain"
)

// KafkaPublisher archives domain events to a Kafka topic. Delivery is
// best-effort, matching the fan-out policy: a failed write is logged and
// dropped, never retried or surfaced.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

type archivedEvent struct {
	Event      string    `json:"event"`
	Payload    any       `json:"payload"`
	ArchivedAt time.Time `json:"archivedAt"`
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	name := event.EventName()
	value, err := json.Marshal(archivedEvent{Event: name, Payload: event, ArchivedAt: time.Now().UTC()})
	if err != nil {
		slog.Error("kafka archive marshal error", slog.String("event", name), slog.Any("error", err))
		return err
	}
	if err := p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(name), Value: value}); err != nil {
		slog.Warn("kafka archive write error", slog.String("event", name), slog.Any("error", err))
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
