package kafka

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/kafka-go"
)

// messageReader is the part of *kafka.Reader the consumer uses.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer reads tree input values from a topic.
type Consumer struct {
	reader messageReader
}

// NewConsumer joins groupID on topic. An empty groupID reads partition 0
// from the first offset.
func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	cfg := kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	}
	if groupID == "" {
		cfg.StartOffset = kafka.FirstOffset
	}
	return &Consumer{reader: kafka.NewReader(cfg)}
}

// Next blocks for the next value.
func (c *Consumer) Next(ctx context.Context) (int64, error) {
	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "kafka: read")
	}
	v, err := DecodeValue(msg.Value)
	if err != nil {
		return 0, errors.Wrapf(err, "offset %d", msg.Offset)
	}
	return v, nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
