package main

import (
	"context"
	"math/rand"

	"github.com/spf13/cobra"

	"arbor/infra/kafka"
	"arbor/infra/logging"
	"arbor/infra/source"
)

// valueSender is satisfied by *kafka.Producer.
type valueSender interface {
	Send(ctx context.Context, values ...int64) error
}

var _ valueSender = (*kafka.Producer)(nil)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "publish random values to the input topic",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := kafka.NewProducer(cfg.Brokers, cfg.InputTopic)
		defer p.Close()
		_, err := seed(cmd.Context(), cfg, p, logging.DefaultLogger)
		return err
	},
}

func init() {
	seedCmd.Flags().IntVarP(
		&cfg.Count, "count", "n", cfg.Count, "number of values to publish")
	seedCmd.Flags().Int64Var(
		&cfg.Min, "min", cfg.Min, "smallest value")
	seedCmd.Flags().Int64Var(
		&cfg.Max, "max", cfg.Max, "largest value")
	seedCmd.Flags().Int64Var(
		&cfg.Seed, "seed", cfg.Seed, "random seed (0 seeds from the clock)")
}

// seed draws cfg.Count random values and sends them in one batch.
func seed(ctx context.Context, cfg Config, out valueSender, logger logging.Logger) ([]int64, error) {
	r := &source.Random{Count: cfg.Count, Min: cfg.Min, Max: cfg.Max}
	if cfg.Seed != 0 {
		r.Rand = rand.New(rand.NewSource(cfg.Seed))
	}
	values, err := source.Collect(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := out.Send(ctx, values...); err != nil {
		return nil, err
	}
	logging.Prefixed(logger, "seed").Infof(
		"published %d values to %s", len(values), cfg.InputTopic)
	return values, nil
}
