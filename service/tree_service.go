package service

import (
	"context"
	"io"
	"sync"

	"github.com/cockroachdb/errors"

	"arbor/domain/bst"
	"arbor/infra/logging"
	"arbor/infra/source"
)

// Appender records input values before they reach the tree.
// *journal.Journal implements it.
type Appender interface {
	Append(ctx context.Context, value int64) (uint64, error)
}

// Config wires a TreeService. Every field is optional.
type Config struct {
	Journal Appender
	Metrics *Metrics
	Logger  logging.Logger
}

/*
TreeService is the only write entry point into the tree.

All coordination between:
- domain (bst)
- infra (journal)
- metrics
happens here, under a single lock.
*/
type TreeService struct {
	mu      sync.Mutex
	tree    *bst.Tree[int64]
	journal Appender
	metrics *Metrics
	logger  logging.Logger
}

// NewTreeService wires all dependencies around an empty tree.
func NewTreeService(cfg Config) *TreeService {
	if cfg.Logger == nil {
		cfg.Logger = logging.DefaultLogger
	}
	return &TreeService{
		tree:    bst.New[int64](bst.WithLogger(cfg.Logger)),
		journal: cfg.Journal,
		metrics: cfg.Metrics,
		logger:  logging.Prefixed(cfg.Logger, "service"),
	}
}

//
// ──────────────────────────────────────────────────────────
// Commands
// ──────────────────────────────────────────────────────────
//

// Insert journals value, then adds it to the tree. It reports whether the
// value was new; a duplicate is not an error. If journaling fails the tree
// is left untouched.
func (s *TreeService) Insert(ctx context.Context, value int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.journal != nil {
		if _, err := s.journal.Append(ctx, value); err != nil {
			return false, errors.Wrapf(err, "insert %d", value)
		}
	}
	return s.insertLocked(value), nil
}

// Load inserts every value src yields and returns how many were new.
func (s *TreeService) Load(ctx context.Context, src source.Source) (int, error) {
	added := 0
	err := src.Read(ctx, func(v int64) error {
		ok, err := s.Insert(ctx, v)
		if ok {
			added++
		}
		return err
	})
	return added, err
}

// apply inserts without journaling. Replay uses it.
func (s *TreeService) apply(value int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(value)
}

func (s *TreeService) insertLocked(value int64) bool {
	ok := s.tree.Insert(value)
	if s.metrics != nil {
		s.metrics.observe(ok, s.tree.Depth(), s.tree.Len())
	}
	return ok
}

//
// ──────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────
//

// Traverse returns the in-order (value, depth) pairs.
func (s *TreeService) Traverse() []bst.Visit[int64] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Traverse()
}

// Height recomputes the number of levels in the tree.
func (s *TreeService) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Height()
}

// Depth returns the insertion depth watermark.
func (s *TreeService) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Depth()
}

func (s *TreeService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Len()
}

// Print writes the tree listing to w.
func (s *TreeService) Print(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Print(w)
}
