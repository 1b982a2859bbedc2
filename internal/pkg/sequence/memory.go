package sequence

import (
	"context"
	"sync"
)

// MemoryCounter keeps sequences in process memory. Values reset on restart.
type MemoryCounter struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{values: make(map[string]int64)}
}

func (c *MemoryCounter) Next(_ context.Context, key string) (int64, error) {
	if key == "" {
		return 0, ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key]++
	return c.values[key], nil
}
