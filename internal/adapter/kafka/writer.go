package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/nwswx/internal/config"
	"github.com/couchcryptid/nwswx/internal/watch"
)

// Publisher produces alert messages to a Kafka topic.
// It implements watch.Publisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured alert topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishBatch serializes and publishes the batch in a single WriteMessages
// call so either every alert in it is acked or the whole batch is retried.
func (p *Publisher) PublishBatch(ctx context.Context, envs []watch.Envelope) error {
	if len(envs) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(envs))
	for i := range envs {
		msg, err := serializeToMessage(envs[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an alert envelope into a Kafka message keyed by
// alert ID, so revisions of the same alert land on the same partition.
func serializeToMessage(env watch.Envelope) (kafkago.Message, error) {
	data, err := json.Marshal(env.Alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(env.Alert.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event", Value: []byte(env.Alert.Event)},
			{Key: "severity", Value: []byte(env.Alert.Severity)},
			{Key: "observed_at", Value: []byte(env.ObservedAt.Format(time.RFC3339))},
		},
	}, nil
}
