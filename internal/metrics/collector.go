package metrics

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type EventType string

const (
	EventAttemptCompleted EventType = "attempt_completed"
	EventChainCompleted   EventType = "chain_completed"
)

const (
	OutcomeOK        = "ok"
	OutcomeExhausted = "exhausted"
)

type MetricEvent struct {
	Type      EventType
	Timestamp time.Time
	Strategy  string
	Duration  time.Duration
	// Outcome is OutcomeOK or the failure kind of the attempt.
	Outcome string
}

type Collector struct {
	eventCh  chan MetricEvent
	metrics  *Metrics
	logger   *slog.Logger
	attempts *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	chains   *prometheus.CounterVec
}

// NewCollector builds a collector whose Prometheus series are registered on
// reg, or on the default registerer when reg is nil.
func NewCollector(bufferSize int, logger *slog.Logger, reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	attempts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logoutput_fetch_attempts_total",
			Help: "Pong count fetch attempts by strategy and outcome.",
		},
		[]string{"strategy", "outcome"},
	)
	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "logoutput_fetch_attempt_duration_seconds",
			Help:    "Latency of pong count fetch attempts that reached the network.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)
	chains := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logoutput_fetch_chains_total",
			Help: "Pong count fetch chains by result.",
		},
		[]string{"result"},
	)

	return &Collector{
		eventCh:  make(chan MetricEvent, bufferSize),
		metrics:  NewMetrics(),
		logger:   logger,
		attempts: register(reg, attempts),
		latency:  register(reg, latency),
		chains:   register(reg, chains),
	}
}

// register reuses an identical collector that is already registered, which
// happens when several collectors share the default registerer.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
	}
	return c
}

func (c *Collector) EventChannel() chan<- MetricEvent {
	return c.eventCh
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event MetricEvent) {
	switch event.Type {
	case EventAttemptCompleted:
		c.metrics.RecordAttempt(event.Strategy, event.Outcome, event.Duration)
		c.attempts.WithLabelValues(event.Strategy, event.Outcome).Inc()
		if event.Duration > 0 {
			c.latency.WithLabelValues(event.Strategy).Observe(event.Duration.Seconds())
		}

	case EventChainCompleted:
		ok := event.Outcome == OutcomeOK
		c.metrics.RecordChain(event.Strategy, ok)
		c.chains.WithLabelValues(event.Outcome).Inc()
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	return c.metrics.Snapshot()
}
