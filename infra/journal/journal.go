package journal

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strconv"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"

	"arbor/infra/logging"
	"arbor/infra/sequence"
)

// ErrClosed is returned by operations on a closed Journal.
var ErrClosed = errors.New("journal: closed")

const keyPrefix = "value/"

// Config configures a Journal.
type Config struct {
	// Dir holds the pebble store. Defaults to "./journal".
	Dir string
	// NoSync skips fsync on each Append. Useful for tests and demo runs.
	NoSync bool
	// Verbose logs pebble's store events (WAL, flush, compaction).
	Verbose bool
	Logger  logging.Logger
}

// Journal records the sequence of values fed into a tree, duplicates
// included, so that the same run can be reproduced later. It stores the
// input, never the tree.
type Journal struct {
	db     *pebble.DB
	seq    *sequence.Sequencer
	wo     *pebble.WriteOptions
	logger logging.Logger
	closed atomic.Bool
}

// Open opens (or creates) the journal in cfg.Dir and resumes numbering after
// the last stored entry.
func Open(cfg Config) (*Journal, error) {
	if cfg.Dir == "" {
		cfg.Dir = "./journal"
	}
	logger := logging.Prefixed(cfg.Logger, "journal")
	opts := &pebble.Options{Logger: logger}
	if cfg.Verbose {
		el := pebble.MakeLoggingEventListener(logger)
		opts.EventListener = &el
	}
	db, err := pebble.Open(cfg.Dir, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "journal: open %s", cfg.Dir)
	}

	j := &Journal{
		db:     db,
		wo:     pebble.Sync,
		logger: logger,
	}
	if cfg.NoSync {
		j.wo = pebble.NoSync
	}

	last, err := j.lastSeq()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	j.seq = sequence.New(last)
	j.logger.Infof("opened %s at seq=%d", cfg.Dir, last)
	return j, nil
}

// Append stores value under the next sequence number and returns it.
func (j *Journal) Append(ctx context.Context, value int64) (uint64, error) {
	if j.closed.Load() {
		return 0, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	seq := j.seq.Next()
	if err := j.db.Set(keyFor(seq), encodeValue(value), j.wo); err != nil {
		return 0, errors.Wrapf(err, "journal: append seq=%d", seq)
	}
	return seq, nil
}

// Replay calls fn for every stored value in sequence order and returns the
// last sequence seen. An error from fn stops the replay and is returned.
func (j *Journal) Replay(fn func(seq uint64, value int64) error) (uint64, error) {
	if j.closed.Load() {
		return 0, ErrClosed
	}
	iter, err := j.db.NewIter(prefixBounds())
	if err != nil {
		return 0, errors.Wrap(err, "journal: replay")
	}
	defer iter.Close()

	var last uint64
	for iter.First(); iter.Valid(); iter.Next() {
		seq, err := parseKey(iter.Key())
		if err != nil {
			return last, err
		}
		value, err := decodeValue(iter.Value())
		if err != nil {
			return last, errors.Wrapf(err, "journal: seq=%d", seq)
		}
		if err := fn(seq, value); err != nil {
			return last, err
		}
		last = seq
	}
	return last, errors.Wrap(iter.Error(), "journal: replay")
}

// Last returns the most recently issued sequence number.
func (j *Journal) Last() uint64 {
	return j.seq.Current()
}

// Close flushes and closes the store. Closing twice returns ErrClosed.
func (j *Journal) Close() error {
	if !j.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return j.db.Close()
}

func (j *Journal) lastSeq() (uint64, error) {
	iter, err := j.db.NewIter(prefixBounds())
	if err != nil {
		return 0, errors.Wrap(err, "journal: scan")
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, errors.Wrap(iter.Error(), "journal: scan")
	}
	return parseKey(iter.Key())
}

func prefixBounds() *pebble.IterOptions {
	return &pebble.IterOptions{
		LowerBound: []byte(keyPrefix),
		UpperBound: []byte("value0"), // '0' sorts right after '/'
	}
}

func keyFor(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", keyPrefix, seq))
}

func parseKey(b []byte) (uint64, error) {
	seq, err := strconv.ParseUint(string(bytes.TrimPrefix(b, []byte(keyPrefix))), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "journal: bad key %q", b)
	}
	return seq, nil
}

// Entry value frame: [value:8][crc:4]
func encodeValue(v int64) []byte {
	buf := make([]byte, 8+4)
	binary.BigEndian.PutUint64(buf[:8], uint64(v))
	binary.BigEndian.PutUint32(buf[8:], crc32.ChecksumIEEE(buf[:8]))
	return buf
}

func decodeValue(b []byte) (int64, error) {
	if len(b) != 8+4 {
		return 0, errors.Newf("invalid entry length %d", len(b))
	}
	if crc32.ChecksumIEEE(b[:8]) != binary.BigEndian.Uint32(b[8:]) {
		return 0, errors.New("entry checksum mismatch")
	}
	return int64(binary.BigEndian.Uint64(b[:8])), nil
}
