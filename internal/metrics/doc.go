// Package metrics records how the pong-count fetch chain behaves.
//
// Events are sent on a buffered channel and folded into in-memory
// statistics by a single goroutine, so the fetch path never blocks on
// bookkeeping:
//   - attempts per strategy, split by outcome (ok, timeout, dns, ...)
//   - attempt latency with percentiles (P50, P95, P99)
//   - chain runs that succeeded or fell back to the default count
//
// The same events also feed Prometheus counters and a latency histogram
// registered on the Registerer given to NewCollector.
//
// Example usage:
//
//	collector := metrics.NewCollector(1000, logger, registry)
//	collector.Start(ctx)
//
//	collector.EventChannel() <- metrics.MetricEvent{
//		Type:     metrics.EventAttemptCompleted,
//		Strategy: "cluster-ip",
//		Duration: 12 * time.Millisecond,
//		Outcome:  metrics.OutcomeOK,
//	}
//
//	snapshot := collector.Snapshot()
package metrics
