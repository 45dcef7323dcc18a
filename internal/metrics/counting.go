package metrics

import "sync"

// Counting is a concurrency-safe in-memory Collector, suitable for test
// assertions; cmd/rbcheck does not use it and has no stats output (it runs
// with DefaultOptions' NoOp collector). Grounded on
// original_source/common/counters.cc's histogram/counter table, minus the
// original's per-thread aggregation step: Go's sync.Mutex covers the same
// "many writers, one reader at the end" shape without needing a
// thread-local layer.
type Counting struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewCounting returns a ready-to-use Counting collector.
func NewCounting() *Counting {
	return &Counting{counts: make(map[string]int64)}
}

func (c *Counting) Inc(name string) {
	c.IncBy(name, 1)
}

func (c *Counting) IncBy(name string, delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name] += delta
}

// Snapshot returns a copy of the current counts, safe to read without
// holding any lock.
func (c *Counting) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
