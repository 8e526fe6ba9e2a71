package sequence

import "sync/atomic"

// Sequencer hands out strictly increasing journal sequence numbers.
// The first number issued after New(start) is start+1.
type Sequencer struct {
	last atomic.Uint64
}

// New creates a sequencer whose last issued number is start.
// A fresh journal starts at 0; a reopened one at its last stored entry.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.last.Store(start)
	return s
}

// Next issues the next sequence number.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Current returns the last issued number.
func (s *Sequencer) Current() uint64 {
	return s.last.Load()
}

// Advance moves the sequencer forward to v if it is behind. Replays use it
// so that numbers issued afterwards never collide with replayed ones.
func (s *Sequencer) Advance(v uint64) {
	for {
		cur := s.last.Load()
		if v <= cur || s.last.CompareAndSwap(cur, v) {
			return
		}
	}
}
