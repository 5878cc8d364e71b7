package main

import (
	"fmt"
	"log/slog"

	"github.com/angeloszaimis/log-output/config"
	"github.com/angeloszaimis/log-output/internal/circuitbreaker"
	"github.com/angeloszaimis/log-output/internal/fetcher"
	"github.com/angeloszaimis/log-output/internal/metrics"
	"github.com/angeloszaimis/log-output/internal/orchestration"
	"github.com/angeloszaimis/log-output/internal/strategy"
)

func buildFetcher(cfg config.FetcherConfig, events chan<- metrics.MetricEvent, log *slog.Logger) (*fetcher.Fetcher, error) {
	strategies, err := parseStrategies(cfg.Strategies)
	if err != nil {
		return nil, err
	}

	query, err := newQuery(cfg.Lookup, log)
	if err != nil {
		return nil, fmt.Errorf("create %s lookup: %w", cfg.Lookup.Mode, err)
	}

	resolver := strategy.NewResolver(strategy.Target{
		Namespace:     cfg.Namespace,
		Service:       cfg.Service,
		LabelSelector: cfg.LabelSelector,
		ServicePort:   cfg.ServicePort,
	}, query)

	var breakers *circuitbreaker.Registry
	if cfg.Breaker.Threshold > 0 {
		breakers = circuitbreaker.NewRegistry(cfg.Breaker.Threshold, cfg.Breaker.ResetTimeoutDuration())
	}

	log.Info("Pong count fetcher configured",
		slog.String("namespace", cfg.Namespace),
		slog.String("service", cfg.Service),
		slog.String("lookup", cfg.Lookup.Mode),
		slog.Any("strategies", strategies),
		slog.String("attempt_timeout", cfg.AttemptTimeout),
		slog.Bool("prefer_last_good", cfg.PreferLastGood),
		slog.Int("breaker_threshold", cfg.Breaker.Threshold))

	return fetcher.New(resolver, nil, fetcher.Options{
		Strategies:     strategies,
		Path:           cfg.Path,
		Field:          cfg.Field,
		AttemptTimeout: cfg.AttemptTimeoutDuration(),
		ChainBudget:    cfg.ChainBudgetDuration(),
		PreferLastGood: cfg.PreferLastGood,
		Breakers:       breakers,
		Events:         events,
		Logger:         log,
	}), nil
}

// parseStrategies keeps the configured order. An empty list selects the
// full chain.
func parseStrategies(names []string) ([]strategy.Strategy, error) {
	if len(names) == 0 {
		return strategy.All(), nil
	}

	out := make([]strategy.Strategy, 0, len(names))
	seen := make(map[strategy.Strategy]bool, len(names))
	for _, name := range names {
		s, err := strategy.Parse(name)
		if err != nil {
			return nil, err
		}
		if seen[s] {
			return nil, fmt.Errorf("strategy %q listed twice", name)
		}
		seen[s] = true
		out = append(out, s)
	}

	return out, nil
}

func newQuery(cfg config.LookupConfig, log *slog.Logger) (orchestration.Query, error) {
	switch cfg.Mode {
	case config.LookupAPI:
		return orchestration.NewAPIFromKubeconfig(cfg.Kubeconfig, log)
	default:
		return orchestration.NewKubectl(orchestration.KubectlOptions{
			Path:       cfg.KubectlPath,
			Kubeconfig: cfg.Kubeconfig,
			Logger:     log,
		}), nil
	}
}
