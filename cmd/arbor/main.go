package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor [command] (flags)",
	Short: "binary search tree demo, seeder and server",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		runCmd,
		seedCmd,
		serveCmd,
	)

	rootCmd.PersistentFlags().StringSliceVar(
		&cfg.Brokers, "brokers", cfg.Brokers, "kafka broker addresses")
	rootCmd.PersistentFlags().StringVar(
		&cfg.InputTopic, "input-topic", cfg.InputTopic, "topic carrying values to insert")
	rootCmd.PersistentFlags().StringVar(
		&cfg.OutputTopic, "output-topic", cfg.OutputTopic, "topic receiving traversal events")
	rootCmd.PersistentFlags().BoolVarP(
		&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable verbose journal event logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
