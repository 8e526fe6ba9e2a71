package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"arbor/api/grpcserver"
	"arbor/infra/journal"
	"arbor/infra/logging"
	"arbor/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the tree over gRPC",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), cfg, logging.DefaultLogger)
	},
}

func init() {
	serveCmd.Flags().StringVar(
		&cfg.GRPCAddr, "addr", cfg.GRPCAddr, "gRPC listen address")
	serveCmd.Flags().StringVar(
		&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "prometheus listen address (empty disables)")
	serveCmd.Flags().StringVarP(
		&cfg.JournalDir, "journal", "j", cfg.JournalDir, "journal directory; replayed at startup")
}

func serve(ctx context.Context, cfg Config, logger logging.Logger) error {
	metrics := service.NewMetrics()
	svcCfg := service.Config{Metrics: metrics, Logger: logger}

	// ---------------- Journal ----------------

	if cfg.JournalDir != "" {
		j, err := journal.Open(journal.Config{Dir: cfg.JournalDir, Verbose: cfg.Verbose, Logger: logger})
		if err != nil {
			return err
		}
		defer j.Close()
		svcCfg.Journal = j
		svc := service.NewTreeService(svcCfg)
		if _, err := service.ReplayFromJournal(j, svc); err != nil {
			return err
		}
		return listen(ctx, cfg, svc, metrics, logger)
	}

	return listen(ctx, cfg, service.NewTreeService(svcCfg), metrics, logger)
}

func listen(
	ctx context.Context,
	cfg Config,
	svc *service.TreeService,
	metrics *service.Metrics,
	logger logging.Logger,
) error {
	log := logging.Prefixed(logger, "serve")

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return errors.Wrap(err, "listen failed")
	}
	grpcSrv := grpc.NewServer()
	grpcserver.Register(grpcSrv, grpcserver.NewServer(svc, logger))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("tree service running on %s", lis.Addr())
		if err := grpcSrv.Serve(lis); !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})

	// ---------------- Metrics ----------------

	var httpSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
		httpSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Infof("shutting down")
		grpcSrv.GracefulStop()
		if httpSrv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}
		return nil
	})

	return g.Wait()
}
