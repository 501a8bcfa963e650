package holidays

import (
	"container/list"
	"log/slog"
	"sync"

	"github.com/tartampluch/go-luach/internal/config"
)

// YearCache is a least-recently-used cache of computed years. It is safe
// for concurrent use.
type YearCache struct {
	mu       sync.Mutex
	capacity int
	compute  func(int) *YearMap
	items    map[int]*list.Element
	order    *list.List
}

type cacheEntry struct {
	year int
	m    *YearMap
}

// NewYearCache returns a cache holding at most capacity years, filled by
// compute on a miss.
func NewYearCache(capacity int, compute func(int) *YearMap) *YearCache {
	if capacity < 1 {
		capacity = 1
	}
	return &YearCache{
		capacity: capacity,
		compute:  compute,
		items:    make(map[int]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached year, computing it on a miss. Concurrent misses
// for the same year may compute it twice; the first stored result wins.
func (c *YearCache) Get(year int) *YearMap {
	c.mu.Lock()
	if el, ok := c.items[year]; ok {
		c.order.MoveToFront(el)
		m := el.Value.(*cacheEntry).m
		c.mu.Unlock()
		return m
	}
	c.mu.Unlock()

	m := c.compute(year)

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[year]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*cacheEntry).m
	}
	c.items[year] = c.order.PushFront(&cacheEntry{year: year, m: m})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		entry := c.order.Remove(oldest).(*cacheEntry)
		delete(c.items, entry.year)
		slog.Debug(config.MsgYearCacheEvict,
			config.LogKeyComponent, config.CompHolidays,
			config.LogKeyYear, entry.year,
		)
	}
	return m
}

// Contains reports whether year is cached without touching its recency.
func (c *YearCache) Contains(year int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[year]
	return ok
}

// Len returns the number of cached years.
func (c *YearCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
