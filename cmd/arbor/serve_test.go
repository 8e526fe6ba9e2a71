package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"arbor/infra/journal"
	"arbor/infra/logging"
)

func TestServeReplaysAndStops(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "journal")
	j, err := journal.Open(journal.Config{Dir: dir, NoSync: true, Logger: logging.Discard{}})
	require.NoError(t, err)
	for _, v := range []int64{3, 1, 3} {
		_, err := j.Append(context.Background(), v)
		require.NoError(t, err)
	}
	require.NoError(t, j.Close())

	c := DefaultConfig()
	c.GRPCAddr = "127.0.0.1:0"
	c.MetricsAddr = ""
	c.JournalDir = dir
	rec := &logging.Recorder{}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	require.NoError(t, serve(ctx, c, rec))
	require.Contains(t, rec.Lines(), "[service] replayed journal up to seq=3, 2 values added")
}
