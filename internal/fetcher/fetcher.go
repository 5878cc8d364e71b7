package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/angeloszaimis/log-output/internal/circuitbreaker"
	"github.com/angeloszaimis/log-output/internal/metrics"
	"github.com/angeloszaimis/log-output/internal/strategy"
)

const (
	DefaultPath           = "/pongs"
	DefaultField          = "pongs"
	DefaultAttemptTimeout = 5 * time.Second
)

// Resolver produces a candidate endpoint for a strategy.
type Resolver interface {
	Resolve(ctx context.Context, s strategy.Strategy) (strategy.Endpoint, bool)
}

// Attempter performs one bounded fetch against an endpoint.
type Attempter interface {
	TryFetch(ctx context.Context, endpoint strategy.Endpoint, path, field string, timeout time.Duration) (int, error)
}

// Options are read once by New and never change afterwards.
type Options struct {
	// Strategies is the chain order. Defaults to strategy.All().
	Strategies []strategy.Strategy
	Path       string
	Field      string
	// AttemptTimeout bounds each strategy, resolution included.
	AttemptTimeout time.Duration
	// ChainBudget bounds a whole chain. Defaults to AttemptTimeout times
	// the number of strategies.
	ChainBudget time.Duration
	// Default is returned when every strategy fails.
	Default int
	// PreferLastGood tries the strategy that last succeeded first.
	PreferLastGood bool
	// Breakers, when set, skips strategies whose breaker is open.
	Breakers *circuitbreaker.Registry
	// Events receives attempt and chain events. Sends never block.
	Events chan<- metrics.MetricEvent
	Logger *slog.Logger
}

// Fetcher runs the ordered fallback chain. It is safe for concurrent use;
// concurrent chains share nothing but the optional last-good entry and
// breakers.
type Fetcher struct {
	resolver  Resolver
	attempter Attempter
	opts      Options
	lastGood  lastGood
	logger    *slog.Logger
}

// New returns a Fetcher. attempter may be nil to use an AttemptRunner.
func New(resolver Resolver, attempter Attempter, opts Options) *Fetcher {
	if attempter == nil {
		attempter = NewAttemptRunner()
	}
	if len(opts.Strategies) == 0 {
		opts.Strategies = strategy.All()
	} else {
		opts.Strategies = append([]strategy.Strategy(nil), opts.Strategies...)
	}
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.Field == "" {
		opts.Field = DefaultField
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = DefaultAttemptTimeout
	}
	if opts.ChainBudget <= 0 {
		opts.ChainBudget = opts.AttemptTimeout * time.Duration(len(opts.Strategies))
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Fetcher{
		resolver:  resolver,
		attempter: attempter,
		opts:      opts,
		logger:    opts.Logger,
	}
}

// Budget returns the upper bound on the duration of one chain.
func (f *Fetcher) Budget() time.Duration {
	return f.opts.ChainBudget
}

// Count returns the backend's pong count, or the default if no strategy
// can produce it.
func (f *Fetcher) Count(ctx context.Context) int {
	return f.Fetch(ctx).Value
}

// Fetch runs one chain and reports how it went.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, f.opts.ChainBudget)
	defer cancel()

	res := Result{Value: f.opts.Default}
	cached, hasCached := f.cached()

	for _, s := range f.order(cached, hasCached) {
		if ctx.Err() != nil {
			break
		}

		value, err := f.try(ctx, s)
		if err == nil {
			res.Value = value
			res.OK = true
			res.Strategy = s
			if f.opts.PreferLastGood {
				f.lastGood.store(s)
			}
			break
		}

		res.Failures = append(res.Failures, err)
		if hasCached && s == cached {
			f.lastGood.forget(s)
		}

		f.logger.Debug("Strategy failed",
			slog.String("strategy", s.String()),
			slog.String("endpoint", err.Endpoint.String()),
			slog.String("kind", string(err.Kind)),
			slog.Any("err", err.Err))
	}

	res.Duration = time.Since(start)
	f.finish(res)

	return res
}

func (f *Fetcher) finish(res Result) {
	event := metrics.MetricEvent{
		Type:      metrics.EventChainCompleted,
		Timestamp: time.Now(),
		Duration:  res.Duration,
		Outcome:   metrics.OutcomeExhausted,
	}

	if res.OK {
		event.Strategy = res.Strategy.String()
		event.Outcome = metrics.OutcomeOK
		f.logger.Debug("Fetched pong count",
			slog.String("strategy", res.Strategy.String()),
			slog.Int("pongs", res.Value),
			slog.Int("failed_before", len(res.Failures)),
			slog.Duration("took", res.Duration))
	} else {
		f.logger.Warn("Pong count unavailable, using default",
			slog.Int("default", res.Value),
			slog.Duration("took", res.Duration),
			slog.Any("err", res.Err()))
	}

	f.emit(event)
}

// try runs one strategy under its own timeout. Only that timeout counts
// against the strategy's breaker; a failure caused by the chain context
// ending is reported as canceled.
func (f *Fetcher) try(chainCtx context.Context, s strategy.Strategy) (int, *AttemptError) {
	breaker := f.breaker(s)
	if breaker != nil && !breaker.Allow() {
		err := &AttemptError{Strategy: s, Kind: KindBreakerOpen, Err: ErrBreakerOpen}
		f.emitAttempt(s, err.Kind, 0)
		return 0, err
	}

	ctx, cancel := context.WithTimeout(chainCtx, f.opts.AttemptTimeout)
	defer cancel()

	value, err := f.resolveAndFetch(chainCtx, ctx, s)
	if err != nil {
		err.Strategy = s
		f.record(breaker, err.Kind)
		return 0, err
	}

	f.record(breaker, "")
	return value, nil
}

func (f *Fetcher) resolveAndFetch(chainCtx, ctx context.Context, s strategy.Strategy) (int, *AttemptError) {
	endpoint, ok := f.resolver.Resolve(ctx, s)
	if !ok {
		kind := KindResolution
		if chainCtx.Err() != nil {
			kind = KindCanceled
		}
		f.emitAttempt(s, kind, 0)
		return 0, &AttemptError{Kind: kind, Err: ErrResolution}
	}

	start := time.Now()
	value, err := f.attempter.TryFetch(ctx, endpoint, f.opts.Path, f.opts.Field, f.opts.AttemptTimeout)
	took := time.Since(start)

	if err != nil {
		var attemptErr *AttemptError
		if !errors.As(err, &attemptErr) {
			attemptErr = &AttemptError{Kind: classify(ctx, err), Err: err}
		}
		if chainCtx.Err() != nil {
			attemptErr.Kind = KindCanceled
		}
		attemptErr.Endpoint = endpoint
		f.emitAttempt(s, attemptErr.Kind, took)
		return 0, attemptErr
	}

	f.emitAttempt(s, "", took)
	return value, nil
}

// order returns the chain order, with the cached strategy moved to the
// front when the last-good preference is on.
func (f *Fetcher) order(cached strategy.Strategy, ok bool) []strategy.Strategy {
	if !ok {
		return f.opts.Strategies
	}

	out := make([]strategy.Strategy, 0, len(f.opts.Strategies))
	out = append(out, cached)
	for _, s := range f.opts.Strategies {
		if s != cached {
			out = append(out, s)
		}
	}
	return out
}

func (f *Fetcher) cached() (strategy.Strategy, bool) {
	if !f.opts.PreferLastGood {
		return 0, false
	}

	s, ok := f.lastGood.get()
	if !ok {
		return 0, false
	}

	for _, known := range f.opts.Strategies {
		if known == s {
			return s, true
		}
	}
	return 0, false
}

func (f *Fetcher) breaker(s strategy.Strategy) *circuitbreaker.CircuitBreaker {
	if f.opts.Breakers == nil {
		return nil
	}
	return f.opts.Breakers.Breaker(s.String())
}

func (f *Fetcher) record(cb *circuitbreaker.CircuitBreaker, kind Kind) {
	if cb == nil {
		return
	}

	switch kind {
	case "":
		cb.RecordSuccess()
	case KindCanceled:
		cb.Release()
	default:
		cb.RecordFailure()
	}
}

func (f *Fetcher) emitAttempt(s strategy.Strategy, kind Kind, took time.Duration) {
	outcome := string(kind)
	if kind == "" {
		outcome = metrics.OutcomeOK
	}

	f.emit(metrics.MetricEvent{
		Type:      metrics.EventAttemptCompleted,
		Timestamp: time.Now(),
		Strategy:  s.String(),
		Duration:  took,
		Outcome:   outcome,
	})
}

func (f *Fetcher) emit(event metrics.MetricEvent) {
	if f.opts.Events == nil {
		return
	}

	select {
	case f.opts.Events <- event:
	default:
	}
}
