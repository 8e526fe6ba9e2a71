package broadcaster

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/cockroachdb/errors"

	"arbor/domain/bst"
	"arbor/infra/logging"
)

// Broadcaster publishes tree traversals to a Kafka topic.
type Broadcaster struct {
	producer sarama.SyncProducer
	topic    string
	logger   logging.Logger
}

// Event is the JSON payload for one visited value.
type Event struct {
	Value int64  `json:"value"`
	Depth int    `json:"depth"`
	Run   string `json:"run"`
}

// ------------------------------------------------
// CONSTRUCTORS
// ------------------------------------------------

// ProducerConfig is the sarama configuration used by New.
func ProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	return cfg
}

func New(brokers []string, topic string, logger logging.Logger) (*Broadcaster, error) {
	producer, err := sarama.NewSyncProducer(brokers, ProducerConfig())
	if err != nil {
		return nil, errors.Wrap(err, "broadcaster: connect")
	}
	return NewWithProducer(producer, topic, logger), nil
}

func NewWithProducer(p sarama.SyncProducer, topic string, logger logging.Logger) *Broadcaster {
	return &Broadcaster{
		producer: p,
		topic:    topic,
		logger:   logging.Prefixed(logger, "broadcaster"),
	}
}

// ------------------------------------------------
// PUBLISH
// ------------------------------------------------

// Publish sends one message per visit, in order, tagged with run. It stops
// at the first failure and returns how many were sent.
func (b *Broadcaster) Publish(ctx context.Context, run string, visits []bst.Visit[int64]) (int, error) {
	for i, v := range visits {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		payload, err := json.Marshal(Event{Value: v.Value, Depth: v.Depth, Run: run})
		if err != nil {
			return i, err
		}
		_, _, err = b.producer.SendMessage(&sarama.ProducerMessage{
			Topic: b.topic,
			Key:   sarama.StringEncoder(strconv.FormatInt(v.Value, 10)),
			Value: sarama.ByteEncoder(payload),
		})
		if err != nil {
			return i, errors.Wrapf(err, "broadcaster: value %d", v.Value)
		}
	}
	b.logger.Infof("published %d visits to %s (run %s)", len(visits), b.topic, run)
	return len(visits), nil
}

// ------------------------------------------------
// SHUTDOWN
// ------------------------------------------------

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
