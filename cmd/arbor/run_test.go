package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"arbor/infra/logging"
)

func TestParseValues(t *testing.T) {
	got, err := parseValues("40,12, 5 -3")
	require.NoError(t, err)
	require.Equal(t, []int64{40, 12, 5, -3}, got)

	_, err = parseValues("1,x")
	require.Error(t, err)
}

func TestFormatValues(t *testing.T) {
	require.Equal(t, "[]", formatValues(nil))
	require.Equal(t, "[42]", formatValues([]int64{42}))
	require.Equal(t, "[40, 12, -5]", formatValues([]int64{40, 12, -5}))
}

func TestRunListText(t *testing.T) {
	c := DefaultConfig()
	c.Source = "list"
	c.Values = "5,3,8,3"
	rec := &logging.Recorder{}

	var out bytes.Buffer
	require.NoError(t, runTree(context.Background(), c, &out, rec))
	require.Equal(t, "Values List Length: 4\n"+
		"Values: [5, 3, 8, 3]\n\n"+
		"\nValues inserted\n\n"+
		"ROOT: 5\n3\t\t1\n5\t\t0\n8\t\t1\n"+
		"\nTree Depth: 1\n\n", out.String())
	require.Equal(t, []string{"[bst] value already exists in tree 3"}, rec.Lines())
}

func TestRunTable(t *testing.T) {
	c := DefaultConfig()
	c.Source = "list"
	c.Values = "2,1"
	c.Format = "table"

	var out bytes.Buffer
	require.NoError(t, runTree(context.Background(), c, &out, logging.Discard{}))
	s := out.String()
	require.Contains(t, s, "VALUE")
	require.Contains(t, s, "DEPTH")
	require.Contains(t, s, "Tree Depth: 1")
}

func TestRunRandomSeeded(t *testing.T) {
	c := DefaultConfig()
	c.Seed = 42

	var a, b bytes.Buffer
	require.NoError(t, runTree(context.Background(), c, &a, logging.Discard{}))
	require.NoError(t, runTree(context.Background(), c, &b, logging.Discard{}))
	require.Equal(t, a.String(), b.String())
	require.True(t, strings.HasPrefix(a.String(), "Values List Length: 50\n"))
}

func TestRunJournalReplay(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "journal")

	c := DefaultConfig()
	c.Source = "list"
	c.Values = "40,12,5,40,4,6,45,76,72,93"
	c.JournalDir = dir
	var first bytes.Buffer
	require.NoError(t, runTree(ctx, c, &first, logging.Discard{}))

	c.Source = "journal"
	c.Values = ""
	var replayed bytes.Buffer
	require.NoError(t, runTree(ctx, c, &replayed, logging.Discard{}))
	require.Equal(t, first.String(), replayed.String())

	// Replaying does not append, so a second replay matches too.
	var again bytes.Buffer
	require.NoError(t, runTree(ctx, c, &again, logging.Discard{}))
	require.Equal(t, first.String(), again.String())
	require.Contains(t, first.String(), "Tree Depth: 3")
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer

	c := DefaultConfig()
	c.Source = "nope"
	require.ErrorContains(t, runTree(ctx, c, &out, logging.Discard{}), "unknown source")

	c = DefaultConfig()
	c.Source = "journal"
	require.ErrorContains(t, runTree(ctx, c, &out, logging.Discard{}), "needs --journal")

	c = DefaultConfig()
	c.Source = "list"
	c.Values = "1"
	c.Format = "xml"
	require.ErrorContains(t, runTree(ctx, c, &out, logging.Discard{}), "unknown format")
}
