package metrics

import (
	"sort"
	"sync"
	"time"
)

const maxSamples = 1000

type Metrics struct {
	mutex         sync.RWMutex
	attempts      map[string]int64
	outcomes      map[string]map[string]int64
	responseTimes map[string][]time.Duration
	chains        map[string]int64
	lastSuccess   string
	startTime     time.Time
}

type Snapshot struct {
	Chains      int64                      `json:"chains"`
	Succeeded   int64                      `json:"succeeded"`
	Exhausted   int64                      `json:"exhausted"`
	LastSuccess string                     `json:"last_success,omitempty"`
	Uptime      time.Duration              `json:"uptime"`
	Strategies  map[string]StrategyMetrics `json:"strategies"`
}

type StrategyMetrics struct {
	Attempts    int64            `json:"attempts"`
	Outcomes    map[string]int64 `json:"outcomes"`
	AvgResponse time.Duration    `json:"avg_response"`
	P50Response time.Duration    `json:"p50_response"`
	P95Response time.Duration    `json:"p95_response"`
	P99Response time.Duration    `json:"p99_response"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		attempts:      make(map[string]int64),
		outcomes:      make(map[string]map[string]int64),
		responseTimes: make(map[string][]time.Duration),
		chains:        make(map[string]int64),
		startTime:     time.Now(),
	}
}

// RecordAttempt counts one strategy attempt. Skipped attempts (no endpoint,
// breaker open) have no latency and are passed with a zero duration.
func (m *Metrics) RecordAttempt(strategy, outcome string, duration time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.attempts[strategy]++

	if m.outcomes[strategy] == nil {
		m.outcomes[strategy] = make(map[string]int64)
	}
	m.outcomes[strategy][outcome]++

	if duration <= 0 {
		return
	}

	m.responseTimes[strategy] = append(m.responseTimes[strategy], duration)
	if len(m.responseTimes[strategy]) > maxSamples {
		m.responseTimes[strategy] = m.responseTimes[strategy][1:]
	}
}

// RecordChain counts one full chain run. strategy is the one that
// succeeded, empty when the chain was exhausted.
func (m *Metrics) RecordChain(strategy string, ok bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if ok {
		m.chains[OutcomeOK]++
		m.lastSuccess = strategy
		return
	}
	m.chains[OutcomeExhausted]++
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Succeeded:   m.chains[OutcomeOK],
		Exhausted:   m.chains[OutcomeExhausted],
		LastSuccess: m.lastSuccess,
		Uptime:      time.Since(m.startTime),
		Strategies:  make(map[string]StrategyMetrics, len(m.attempts)),
	}
	snap.Chains = snap.Succeeded + snap.Exhausted

	for strategy, attempts := range m.attempts {
		sm := StrategyMetrics{
			Attempts: attempts,
			Outcomes: make(map[string]int64, len(m.outcomes[strategy])),
		}
		for outcome, n := range m.outcomes[strategy] {
			sm.Outcomes[outcome] = n
		}

		durations := m.responseTimes[strategy]
		if len(durations) > 0 {
			sorted := make([]time.Duration, len(durations))
			copy(sorted, durations)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i] < sorted[j]
			})

			sm.AvgResponse = average(sorted)
			sm.P50Response = percentile(sorted, 0.50)
			sm.P95Response = percentile(sorted, 0.95)
			sm.P99Response = percentile(sorted, 0.99)
		}

		snap.Strategies[strategy] = sm
	}

	return snap
}

func average(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	var sum time.Duration
	for _, d := range durations {
		sum += d
	}

	return sum / time.Duration(len(durations))
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(float64(len(sorted)) * p)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}

	return sorted[index]
}
