package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"arbor/infra/journal"
	"arbor/infra/kafka"
	"arbor/infra/logging"
	"arbor/infra/source"
	"arbor/jobs/broadcaster"
	"arbor/service"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "build a tree from a value source and print it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTree(cmd.Context(), cfg, cmd.OutOrStdout(), logging.DefaultLogger)
	},
}

func init() {
	runCmd.Flags().StringVarP(
		&cfg.Source, "source", "s", cfg.Source, "value source: random, list, kafka or journal")
	runCmd.Flags().IntVarP(
		&cfg.Count, "count", "n", cfg.Count, "number of values to draw (random, kafka)")
	runCmd.Flags().Int64Var(
		&cfg.Min, "min", cfg.Min, "smallest random value")
	runCmd.Flags().Int64Var(
		&cfg.Max, "max", cfg.Max, "largest random value")
	runCmd.Flags().Int64Var(
		&cfg.Seed, "seed", cfg.Seed, "random seed (0 seeds from the clock)")
	runCmd.Flags().StringVar(
		&cfg.Values, "values", cfg.Values, "values for the list source, e.g. 40,12,5")
	runCmd.Flags().StringVar(
		&cfg.GroupID, "group", cfg.GroupID, "kafka consumer group for the kafka source")
	runCmd.Flags().StringVarP(
		&cfg.JournalDir, "journal", "j", cfg.JournalDir, "journal directory to record to (or replay with --source journal)")
	runCmd.Flags().BoolVar(
		&cfg.Broadcast, "broadcast", cfg.Broadcast, "publish the traversal to the output topic")
	runCmd.Flags().StringVar(
		&cfg.Format, "format", cfg.Format, "tree listing format: text or table")
}

func runTree(ctx context.Context, cfg Config, out io.Writer, logger logging.Logger) error {
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}()

	var j *journal.Journal
	if cfg.JournalDir != "" {
		var err error
		j, err = journal.Open(journal.Config{Dir: cfg.JournalDir, Verbose: cfg.Verbose, Logger: logger})
		if err != nil {
			return err
		}
		closers = append(closers, j)
	}

	src, err := openSource(cfg, j, &closers)
	if err != nil {
		return err
	}
	values, err := source.Collect(ctx, src)
	if err != nil {
		return err
	}

	svcCfg := service.Config{Logger: logger}
	if j != nil && cfg.Source != "journal" {
		svcCfg.Journal = j
	}
	svc := service.NewTreeService(svcCfg)

	fmt.Fprintf(out, "Values List Length: %d\n", len(values))
	fmt.Fprintf(out, "Values: %s\n\n", formatValues(values))

	if _, err := svc.Load(ctx, source.Slice(values)); err != nil {
		return err
	}

	fmt.Fprint(out, "\nValues inserted\n\n")
	if err := printTree(out, svc, cfg.Format); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nTree Depth: %d\n\n", svc.Depth())

	if cfg.Broadcast {
		b, err := broadcaster.New(cfg.Brokers, cfg.OutputTopic, logger)
		if err != nil {
			return err
		}
		defer b.Close()
		run := strconv.FormatInt(time.Now().UnixNano(), 36)
		if _, err := b.Publish(ctx, run, svc.Traverse()); err != nil {
			return err
		}
	}
	return nil
}

func openSource(cfg Config, j *journal.Journal, closers *[]io.Closer) (source.Source, error) {
	switch cfg.Source {
	case "random":
		r := &source.Random{Count: cfg.Count, Min: cfg.Min, Max: cfg.Max}
		if cfg.Seed != 0 {
			r.Rand = rand.New(rand.NewSource(cfg.Seed))
		}
		return r, nil
	case "list":
		values, err := parseValues(cfg.Values)
		if err != nil {
			return nil, err
		}
		return source.Slice(values), nil
	case "kafka":
		c := kafka.NewConsumer(cfg.Brokers, cfg.InputTopic, cfg.GroupID)
		*closers = append(*closers, c)
		return source.Kafka{Reader: c, Count: cfg.Count}, nil
	case "journal":
		if j == nil {
			return nil, errors.New("--source journal needs --journal")
		}
		return source.Journal{J: j}, nil
	default:
		return nil, errors.Newf("unknown source %q", cfg.Source)
	}
}

func printTree(w io.Writer, svc *service.TreeService, format string) error {
	switch format {
	case "text":
		return svc.Print(w)
	case "table":
		visits := svc.Traverse()
		if len(visits) == 0 {
			return nil
		}
		tw := tablewriter.NewWriter(w)
		tw.SetHeader([]string{"Value", "Depth"})
		tw.SetAlignment(tablewriter.ALIGN_RIGHT)
		for _, v := range visits {
			tw.Append([]string{strconv.FormatInt(v.Value, 10), strconv.Itoa(v.Depth)})
		}
		tw.Render()
		return nil
	default:
		return errors.Newf("unknown format %q", format)
	}
}

// formatValues renders values as "[40, 12, 5]".
func formatValues(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
