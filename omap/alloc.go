package omap

// Allocator is told how many entries of storage a Map reserves and frees.
// It lets an owner account for the memory of the maps it creates and verify
// that every map was released.
type Allocator interface {
	Reserve(entries int)
	Free(entries int)
}

type heap struct{}

func (heap) Reserve(int) {}
func (heap) Free(int)    {}

// Counter is an Allocator that keeps a running total of reserved entries.
// It is not safe for concurrent use.
type Counter struct {
	Live  int
	Peak  int
	Total int
}

func (c *Counter) Reserve(entries int) {
	c.Live += entries
	c.Total += entries
	if c.Live > c.Peak {
		c.Peak = c.Live
	}
}

func (c *Counter) Free(entries int) {
	c.Live -= entries
}
