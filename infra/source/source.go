// Package source supplies the value sequences a tree is built from.
package source

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"

	"arbor/infra/journal"
)

// Source feeds values, in order, to fn. It returns nil once the sequence is
// exhausted and stops at the first error from fn.
type Source interface {
	Read(ctx context.Context, fn func(int64) error) error
}

// Slice is a fixed list of values.
type Slice []int64

func (s Slice) Read(ctx context.Context, fn func(int64) error) error {
	for _, v := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// Random yields Count values drawn uniformly from [Min, Max]. Repeats are
// expected.
type Random struct {
	Count    int
	Min, Max int64
	// Rand defaults to a time-seeded generator.
	Rand *rand.Rand
}

// DefaultRandom is 50 values between 1 and 100.
func DefaultRandom() *Random {
	return &Random{Count: 50, Min: 1, Max: 100}
}

func (r *Random) Read(ctx context.Context, fn func(int64) error) error {
	if r.Max < r.Min {
		return errors.Newf("source: empty range [%d, %d]", r.Min, r.Max)
	}
	rng := r.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	// Width in uint64 arithmetic; 0 means the full int64 range.
	span := uint64(r.Max) - uint64(r.Min) + 1
	for i := 0; i < r.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(int64(uint64(r.Min) + offset(rng, span))); err != nil {
			return err
		}
	}
	return nil
}

// offset draws uniformly from [0, span), or from all of uint64 when span
// is 0.
func offset(rng *rand.Rand, span uint64) uint64 {
	switch {
	case span == 0:
		return rng.Uint64()
	case span <= math.MaxInt64:
		return uint64(rng.Int63n(int64(span)))
	}
	// Reject the low values that would bias v % span.
	threshold := -span % span
	for {
		if v := rng.Uint64(); v >= threshold {
			return v % span
		}
	}
}

// Collect drains src into a slice.
func Collect(ctx context.Context, src Source) ([]int64, error) {
	var out []int64
	err := src.Read(ctx, func(v int64) error {
		out = append(out, v)
		return nil
	})
	return out, err
}

// Journal replays a journal's recorded values.
type Journal struct {
	J *journal.Journal
}

func (s Journal) Read(ctx context.Context, fn func(int64) error) error {
	_, err := s.J.Replay(func(_ uint64, v int64) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(v)
	})
	return err
}
