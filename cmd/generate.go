package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/log-output/internal/generator"
	"github.com/angeloszaimis/log-output/pkg/logger"
)

func (a *app) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Append a timestamped random line to the shared status file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd.Context())
		},
	}
}

func (a *app) runGenerate(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logger.ForRole(a.log, "generator")
	g := generator.New(a.cfg.Generator.File, a.cfg.Generator.IntervalDuration(), log)

	return g.Run(ctx)
}
