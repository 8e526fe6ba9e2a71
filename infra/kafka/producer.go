package kafka

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes tree input values to a topic, one message per value.
type Producer struct {
	writer messageWriter
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Send publishes values in order. Message keys are the position within
// this call so consumers can spot gaps.
func (p *Producer) Send(ctx context.Context, values ...int64) error {
	if len(values) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, len(values))
	for i, v := range values {
		msgs[i] = kafka.Message{
			Key:   []byte(strconv.Itoa(i)),
			Value: EncodeValue(v),
		}
	}
	return errors.Wrapf(p.writer.WriteMessages(ctx, msgs...), "kafka: send %d values", len(values))
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// EncodeValue renders v as decimal text.
func EncodeValue(v int64) []byte {
	return strconv.AppendInt(nil, v, 10)
}

// DecodeValue parses a decimal message payload.
func DecodeValue(b []byte) (int64, error) {
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "kafka: bad value %q", b)
	}
	return v, nil
}
