package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/angeloszaimis/log-output/internal/httpserver"
	"github.com/angeloszaimis/log-output/internal/metrics"
	"github.com/angeloszaimis/log-output/pkg/logger"
)

// writeSlack is added to the fetch budget so a /status response is never
// cut off by the server's write timeout.
const writeSlack = 5 * time.Second

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Serve the latest log line together with the ping-pong count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd.Context())
		},
	}
}

func (a *app) runStatus(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logger.ForRole(a.log, "status")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	collector := metrics.NewCollector(a.cfg.Metrics.BufferSize, log, reg)
	collector.Start(ctx)

	f, err := buildFetcher(a.cfg.Fetcher, collector.EventChannel(), log)
	if err != nil {
		return fmt.Errorf("build fetcher: %w", err)
	}

	router := setupStatusRouter(log, f, a.cfg.Generator.File, collector, reg)

	srv, err := httpserver.New(a.cfg.Server.Address, router, log,
		httpserver.WithWriteTimeout(f.Budget()+writeSlack))
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	log.Info("Starting log status service",
		slog.String("addr", a.cfg.Server.Address),
		slog.String("status_file", a.cfg.Generator.File))

	return srv.Run(ctx)
}
