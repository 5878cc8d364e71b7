// Package circuitbreaker guards the backend resolution strategies.
//
// When a strategy keeps failing (its endpoint times out or refuses
// connections), its breaker opens and the fetch chain treats it as failed
// without doing any I/O until the reset timeout has passed. One probe is
// then let through:
//
//   - CLOSED: the strategy is attempted normally
//   - OPEN: the strategy is skipped
//   - HALF-OPEN: a single probe attempt decides between CLOSED and OPEN
//
// Usage:
//
//	registry := circuitbreaker.NewRegistry(3, 30*time.Second)
//	cb := registry.Breaker("cluster-ip")
//	if cb.Allow() {
//	    if _, err := attempt(); err != nil {
//	        cb.RecordFailure()
//	    } else {
//	        cb.RecordSuccess()
//	    }
//	}
//
// A registry built with a threshold of zero never opens.
package circuitbreaker
