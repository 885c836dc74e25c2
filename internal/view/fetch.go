package view

import "sync"

// Coordinator orders overlapping fetches for one view. Each fetch begins by
// taking a generation; only the result of the newest generation may be
// applied, so a slow earlier response can never overwrite a later one and a
// response arriving after the view moved on is discarded.
type Coordinator struct {
	mu         sync.Mutex
	generation uint64
}

func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Begin starts a new fetch and invalidates all earlier ones.
func (c *Coordinator) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	return c.generation
}

// Apply runs apply under the coordinator's lock iff gen is still current.
// It reports whether the result was applied or discarded as stale.
func (c *Coordinator) Apply(gen uint64, apply func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	apply()
	return true
}
