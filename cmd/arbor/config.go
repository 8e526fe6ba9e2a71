package main

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Config holds every knob the commands share. Zero values are replaced by
// defaults before use.
type Config struct {
	Brokers     []string
	InputTopic  string
	OutputTopic string
	GroupID     string

	// Source is one of random, list, kafka or journal.
	Source string
	Count  int
	Min    int64
	Max    int64
	Seed   int64
	Values string

	// JournalDir records the input sequence when set. With Source "journal"
	// it is replayed instead.
	JournalDir string
	Verbose    bool
	Broadcast  bool
	Format     string

	GRPCAddr    string
	MetricsAddr string
}

var cfg = DefaultConfig()

func DefaultConfig() Config {
	return Config{
		Brokers:     []string{"localhost:9092"},
		InputTopic:  "arbor-values",
		OutputTopic: "arbor-visits",
		GroupID:     "arbor",
		Source:      "random",
		Count:       50,
		Min:         1,
		Max:         100,
		Format:      "text",
		GRPCAddr:    ":50051",
		MetricsAddr: ":9090",
	}
}

// parseValues reads a comma or space separated list of integers.
func parseValues(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad value %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}
