package source

import (
	"context"
)

// ValueReader is satisfied by *kafka.Consumer.
type ValueReader interface {
	Next(ctx context.Context) (int64, error)
}

// Kafka reads Count values from a topic consumer. Count <= 0 reads until
// ctx is done, which then ends the sequence without error.
type Kafka struct {
	Reader ValueReader
	Count  int
}

func (s Kafka) Read(ctx context.Context, fn func(int64) error) error {
	for i := 0; s.Count <= 0 || i < s.Count; i++ {
		v, err := s.Reader.Next(ctx)
		if err != nil {
			if s.Count <= 0 && ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}
