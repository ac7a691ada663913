package product

// Counter is an explicitly shared running total of units across every
// product it is attached to. Construction adds the initial quantity and
// every deduction subtracts.
//
// Concurrency model: single writer at a time. The domain core is
// synchronous and in-process, so no locking is done here; a concurrent
// caller must wrap access in its own synchronization or give each
// goroutine its own Counter.
type Counter struct {
	total int64
}

// NewCounter returns a counter starting at zero.
func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) add(n int) { c.total += int64(n) }

func (c *Counter) sub(n int) { c.total -= int64(n) }

// Total returns the current running total of units.
func (c *Counter) Total() int64 { return c.total }
