package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/log-output/internal/httpserver"
	"github.com/angeloszaimis/log-output/internal/pingpong"
	"github.com/angeloszaimis/log-output/pkg/logger"
)

func (a *app) pingPongCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pingpong",
		Short: "Serve the ping-pong counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPingPong(cmd.Context())
		},
	}
}

func (a *app) runPingPong(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logger.ForRole(a.log, "pingpong")
	router := setupPingPongRouter(log, pingpong.NewCounter())

	srv, err := httpserver.New(a.cfg.PingPong.Address, router, log)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	return srv.Run(ctx)
}
