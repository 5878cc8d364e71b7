package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/angeloszaimis/log-output/config"
	"github.com/angeloszaimis/log-output/internal/httpserver"
	"github.com/angeloszaimis/log-output/internal/todo"
	"github.com/angeloszaimis/log-output/pkg/logger"
)

func (a *app) todoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "todo",
		Short: "Serve the todo backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTodo(cmd.Context())
		},
	}
}

func (a *app) runTodo(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logger.ForRole(a.log, "todo")

	store, closeStore, err := newTodoStore(ctx, a.cfg.Todo, log)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := httpserver.New(a.cfg.Todo.Address, setupTodoRouter(log, store), log)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	return srv.Run(ctx)
}

// newTodoStore returns the configured store and a func releasing it.
func newTodoStore(ctx context.Context, cfg config.TodoConfig, log *slog.Logger) (todo.Store, func(), error) {
	if cfg.Store != config.StoreRedis {
		log.Info("Using in-memory todo store")
		return todo.NewMemoryStore(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address})
	store := todo.NewRedisStore(client, cfg.Redis.Key)

	if err := store.Ping(ctx); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Address, err)
	}
	if err := store.EnsureSeeded(ctx); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("seed todos: %w", err)
	}

	log.Info("Using redis todo store",
		slog.String("addr", cfg.Redis.Address),
		slog.String("key", cfg.Redis.Key))

	return store, func() { client.Close() }, nil
}
