package handler

import (
	"context"
	"sync"
	"time"

	"paradisian/internal/view"
	"paradisian/pkg/logger"
)

// typesCache holds the distinct room types. The list changes only when an
// admin adds a new type, so pages render from cache while a background
// refresh keeps it current. Refreshes overlap freely; the coordinator
// guarantees a slow older refresh can never overwrite a newer result.
type typesCache struct {
	backend Backend
	log     *logger.Logger
	coord   *view.Coordinator

	mu    sync.RWMutex
	types []string
}

func newTypesCache(backend Backend, log *logger.Logger) *typesCache {
	return &typesCache{
		backend: backend,
		log:     log,
		coord:   view.NewCoordinator(),
	}
}

// Get returns the room types, fetching synchronously only when the cache is
// cold. A warm cache answers immediately and refreshes in the background.
func (c *typesCache) Get(ctx context.Context) []string {
	c.mu.RLock()
	cached := c.types
	c.mu.RUnlock()

	if cached == nil {
		gen := c.coord.Begin()
		types, err := c.backend.RoomTypes(ctx)
		if err != nil {
			c.log.Warn("Failed to fetch room types", "error", err)
			return nil
		}
		c.apply(gen, types)
		return types
	}

	go c.refresh()
	return cached
}

func (c *typesCache) refresh() {
	gen := c.coord.Begin()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	types, err := c.backend.RoomTypes(ctx)
	if err != nil {
		c.log.Warn("Room type refresh failed, keeping cached list", "error", err)
		return
	}
	c.apply(gen, types)
}

func (c *typesCache) apply(gen uint64, types []string) {
	c.coord.Apply(gen, func() {
		c.mu.Lock()
		c.types = types
		c.mu.Unlock()
	})
}
