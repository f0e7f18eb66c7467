package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const maxJanitorInterval = 2 * time.Minute

var (
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_service",
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Cache lookups by result (hit, miss, expired).",
	}, []string{"result"})

	cacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order_service",
		Subsystem: "cache",
		Name:      "evictions_total",
		Help:      "Entries removed from the cache by reason (capacity, expired).",
	}, []string{"reason"})
)

type entry struct {
	key     string
	value   []byte
	expires time.Time
}

// LRUCache потокобезопасный LRU с TTL на каждую запись
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	ll       *list.List
	items    map[string]*list.Element
	now      func() time.Time
}

func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

func (c *LRUCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ele, ok := c.items[key]
	if !ok {
		cacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	ent := ele.Value.(*entry)
	if c.expired(ent) {
		c.remove(ele)
		cacheLookups.WithLabelValues("expired").Inc()
		cacheEvictions.WithLabelValues("expired").Inc()
		return nil, false
	}

	c.ll.MoveToFront(ele)
	cacheLookups.WithLabelValues("hit").Inc()
	return ent.value, true
}

// Set вставляет или обновляет значение, продлевая TTL
func (c *LRUCache) Set(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if ele, ok := c.items[key]; ok {
		ent := ele.Value.(*entry)
		ent.value, ent.expires = value, expires
		c.ll.MoveToFront(ele)
		return
	}

	c.items[key] = c.ll.PushFront(&entry{key: key, value: value, expires: expires})

	for c.ll.Len() > c.capacity {
		c.remove(c.ll.Back())
		cacheEvictions.WithLabelValues("capacity").Inc()
	}
}

func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, ok := c.items[key]; ok {
		c.remove(ele)
	}
}

func (c *LRUCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Start запускает janitor до отмены ctx
func (c *LRUCache) Start(ctx context.Context) error {
	go c.janitor(ctx, janitorInterval(c.ttl))
	return nil
}

func janitorInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > maxJanitorInterval {
		return maxJanitorInterval
	}
	return ttl
}

func (c *LRUCache) janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-ctx.Done():
			return
		}
	}
}

// cleanup идет с хвоста, где лежат самые давние записи
func (c *LRUCache) cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for e := c.ll.Back(); e != nil; {
		prev := e.Prev()
		if c.expired(e.Value.(*entry)) {
			c.remove(e)
			removed++
		}
		e = prev
	}
	cacheEvictions.WithLabelValues("expired").Add(float64(removed))
	return removed
}

func (c *LRUCache) expired(ent *entry) bool {
	return c.now().After(ent.expires)
}

func (c *LRUCache) remove(e *list.Element) {
	c.ll.Remove(e)
	delete(c.items, e.Value.(*entry).key)
}
