package layout

import "strconv"

// Counter issues tree node IDs node-0, node-1, ... for one build.
// It is not safe for concurrent use; each build owns its own.
type Counter struct {
	next int
}

// NewCounter returns a counter starting at node-0.
func NewCounter() *Counter { return &Counter{} }

// Next returns the next ID.
func (c *Counter) Next() string {
	id := "node-" + strconv.Itoa(c.next)
	c.next++
	return id
}
