package mem

import (
	"sync"
	"time"
)

// LegKey identifies a directed travel leg for one transport mode.
type LegKey struct {
	Mode string
	From string // "lat,lng" rounded by the caller
	To   string
}

type LegValue struct {
	DistanceKm      float64
	DurationMinutes int
}

type legEntry struct {
	value     LegValue
	expiresAt time.Time
}

// LegCache is a process-wide TTL cache for provider travel legs. Road
// geometry changes rarely, so cached legs stay valid for days.
type LegCache interface {
	Get(k LegKey) (LegValue, bool)
	Set(k LegKey, v LegValue, ttl time.Duration)
}

type inMemoryLegCache struct {
	mu    sync.RWMutex
	store map[LegKey]legEntry
}

func NewLegCache() LegCache {
	return &inMemoryLegCache{store: make(map[LegKey]legEntry)}
}

func (c *inMemoryLegCache) Get(k LegKey) (LegValue, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.store[k]
	if !ok || time.Now().After(it.expiresAt) {
		return LegValue{}, false
	}
	return it.value, true
}

func (c *inMemoryLegCache) Set(k LegKey, v LegValue, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[k] = legEntry{value: v, expiresAt: time.Now().Add(ttl)}
}
