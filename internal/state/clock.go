package state

import "sync"

// Clock is a Lamport clock.
type Clock struct {
	counter uint64
	mu      sync.Mutex
}

// Tick increments the clock and returns the new value
func (c *Clock) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	return c.counter
}

// Update moves the clock forward to a timestamp seen from another site.
func (c *Clock) Update(timestamp uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if timestamp > c.counter {
		c.counter = timestamp
	}
}
