package service

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"arbor/domain/bst"
	"arbor/infra/journal"
	"arbor/infra/logging"
	"arbor/infra/source"
)

func TestInsertAndQuery(t *testing.T) {
	ctx := context.Background()
	rec := &logging.Recorder{}
	svc := NewTreeService(Config{Logger: rec})

	added, err := svc.Load(ctx, source.Slice{5, 3, 8, 1, 4, 7, 9, 3})
	require.NoError(t, err)
	require.Equal(t, 7, added)
	require.Equal(t, 7, svc.Len())
	require.Equal(t, 2, svc.Depth())
	require.Equal(t, 3, svc.Height())
	require.Equal(t, []bst.Visit[int64]{
		{Value: 1, Depth: 2}, {Value: 3, Depth: 1}, {Value: 4, Depth: 2}, {Value: 5, Depth: 0}, {Value: 7, Depth: 2}, {Value: 8, Depth: 1}, {Value: 9, Depth: 2},
	}, svc.Traverse())
	require.Equal(t, []string{"[bst] value already exists in tree 3"}, rec.Lines())

	var buf bytes.Buffer
	require.NoError(t, svc.Print(&buf))
	require.Equal(t, "ROOT: 5\n1\t\t2\n3\t\t1\n4\t\t2\n5\t\t0\n7\t\t2\n8\t\t1\n9\t\t2\n", buf.String())
}

func TestConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	svc := NewTreeService(Config{Logger: logging.Discard{}})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if _, err := svc.Insert(ctx, int64((i*7+w)%1000)); err != nil {
					t.Error(err)
				}
			}
		}(w)
	}
	wg.Wait()

	visits := svc.Traverse()
	require.Equal(t, svc.Len(), len(visits))
	for i := 1; i < len(visits); i++ {
		require.Less(t, visits[i-1].Value, visits[i].Value)
	}
}

type failingAppender struct{}

func (failingAppender) Append(context.Context, int64) (uint64, error) {
	return 0, errors.New("disk full")
}

func TestJournalFailureLeavesTreeUntouched(t *testing.T) {
	svc := NewTreeService(Config{Journal: failingAppender{}, Logger: logging.Discard{}})
	ok, err := svc.Insert(context.Background(), 1)
	require.False(t, ok)
	require.ErrorContains(t, err, "disk full")
	require.Equal(t, 0, svc.Len())
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics()
	svc := NewTreeService(Config{Metrics: m, Logger: logging.Discard{}})
	_, err := svc.Load(ctx, source.Slice{1, 2, 3, 2, 2})
	require.NoError(t, err)

	require.Equal(t, 3.0, testutil.ToFloat64(m.inserts.WithLabelValues("inserted")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.inserts.WithLabelValues("duplicate")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.depth))
	require.Equal(t, 3.0, testutil.ToFloat64(m.size))
	n, err := testutil.GatherAndCount(m.Registry)
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestReplayFromJournal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	j, err := journal.Open(journal.Config{Dir: dir, NoSync: true, Logger: logging.Discard{}})
	require.NoError(t, err)
	svc := NewTreeService(Config{Journal: j, Logger: logging.Discard{}})
	_, err = svc.Load(ctx, source.Slice{40, 12, 5, 40, 4, 6, 45, 76, 72, 93})
	require.NoError(t, err)
	want := svc.Traverse()
	require.NoError(t, j.Close())

	j, err = journal.Open(journal.Config{Dir: dir, NoSync: true, Logger: logging.Discard{}})
	require.NoError(t, err)
	defer j.Close()
	rebuilt := NewTreeService(Config{Journal: j, Logger: logging.Discard{}})
	last, err := ReplayFromJournal(j, rebuilt)
	require.NoError(t, err)
	require.Equal(t, uint64(10), last)
	require.Equal(t, want, rebuilt.Traverse())
	require.Equal(t, svc.Depth(), rebuilt.Depth())

	// Replay must not have appended anything.
	require.Equal(t, uint64(10), j.Last())
}
