package location

import (
	"container/list"
	"context"
	"fmt"
	"sync"
)

// CachedGeocoder wraps a Geocoder with an in-memory LRU cache keyed by
// coordinates rounded to about 10 m.
type CachedGeocoder struct {
	inner Geocoder

	mu         sync.Mutex
	maxEntries int
	order      *list.List // front = most recently used
	entries    map[string]*list.Element
}

type cacheEntry struct {
	key   string
	place Place
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner Geocoder, maxEntries int) *CachedGeocoder {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &CachedGeocoder{
		inner:      inner,
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if p, ok := c.get(key); ok {
		return p, nil
	}
	p, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return p, err
	}
	// Only cache non-empty results so transient "not found" responses can be retried.
	if !p.Empty() {
		c.put(key, p)
	}
	return p, nil
}

// Len returns the number of cached places.
func (c *CachedGeocoder) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *CachedGeocoder) get(key string) (Place, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return Place{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).place, true
}

func (c *CachedGeocoder) put(key string, p Place) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).place = p
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, place: p})
	if c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}
