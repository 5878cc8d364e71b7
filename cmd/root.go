package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/angeloszaimis/log-output/config"
	"github.com/angeloszaimis/log-output/pkg/logger"
)

// app carries what every subcommand needs once the configuration is loaded.
type app struct {
	configPath string
	logOutput  io.Writer
	cfg        *config.Config
	log        *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "logoutput",
		Short:         "Log output, ping-pong and todo services",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file (default ./config/config.yaml or ./config.yaml)")

	root.AddCommand(a.statusCmd())
	root.AddCommand(a.generateCmd())
	root.AddCommand(a.pingPongCmd())
	root.AddCommand(a.todoCmd())
	root.AddCommand(a.configCmd())

	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, true, cfg.Server.Environment, a.logOutput)

	return nil
}
