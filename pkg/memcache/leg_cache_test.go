package mem

import (
	"sync"
	"testing"
	"time"
)

func TestLegCacheSetGet(t *testing.T) {
	cache := NewLegCache()
	key := LegKey{Mode: "walking", From: "37.50000,127.02000", To: "37.51000,127.03000"}
	value := LegValue{DistanceKm: 1.5, DurationMinutes: 20}

	if _, ok := cache.Get(key); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Set(key, value, time.Minute)
	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if got != value {
		t.Fatalf("got %+v, want %+v", got, value)
	}

	// Direction and mode are part of the key.
	if _, ok := cache.Get(LegKey{Mode: "walking", From: key.To, To: key.From}); ok {
		t.Fatal("reverse direction should miss")
	}
	if _, ok := cache.Get(LegKey{Mode: "driving", From: key.From, To: key.To}); ok {
		t.Fatal("different mode should miss")
	}
}

func TestLegCacheExpiry(t *testing.T) {
	cache := NewLegCache()
	key := LegKey{Mode: "driving", From: "a", To: "b"}

	cache.Set(key, LegValue{DistanceKm: 3}, -time.Second)
	if _, ok := cache.Get(key); ok {
		t.Fatal("expired entry must miss")
	}
}

func TestLegCacheConcurrentAccess(t *testing.T) {
	cache := NewLegCache()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := LegKey{Mode: "walking", From: "x", To: "y"}
			for j := 0; j < 100; j++ {
				cache.Set(key, LegValue{DistanceKm: float64(j)}, time.Minute)
				cache.Get(key)
			}
		}()
	}
	wg.Wait()
}
