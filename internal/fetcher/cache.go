package fetcher

import (
	"sync"

	"github.com/angeloszaimis/log-output/internal/strategy"
)

// lastGood remembers the strategy that most recently produced a value. It
// holds at most one entry and is only consulted when the fetcher prefers
// the last known good strategy.
type lastGood struct {
	mutex    sync.Mutex
	strategy strategy.Strategy
}

func (c *lastGood) get() (strategy.Strategy, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.strategy, c.strategy.Valid()
}

func (c *lastGood) store(s strategy.Strategy) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.strategy = s
}

// forget clears the entry if it still names s.
func (c *lastGood) forget(s strategy.Strategy) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.strategy == s {
		c.strategy = 0
	}
}
