package fetcher

import (
	"time"

	"github.com/angeloszaimis/log-output/internal/strategy"
)

// Result is the outcome of one chain run.
type Result struct {
	// Value is the fetched count, or the default when OK is false.
	Value int
	OK    bool
	// Strategy is the strategy that produced Value when OK is true.
	Strategy strategy.Strategy
	// Failures lists the strategies that failed before the chain ended, in
	// the order they were tried.
	Failures []*AttemptError
	Duration time.Duration
}

// Err returns nil for a successful chain and an *ExhaustedError otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return &ExhaustedError{Failures: r.Failures}
}
