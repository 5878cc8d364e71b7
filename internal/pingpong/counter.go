package pingpong

import "sync/atomic"

// Counter counts answered pings. It starts at zero on every process start.
type Counter struct {
	n atomic.Int64
}

func NewCounter() *Counter {
	return &Counter{}
}

// Increment records one ping and returns the new count.
func (c *Counter) Increment() int64 {
	return c.n.Add(1)
}

func (c *Counter) Value() int64 {
	return c.n.Load()
}
