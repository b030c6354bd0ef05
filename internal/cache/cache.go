package cache

import (
	"storefront-orders/internal/interfaces"
	"storefront-orders/internal/metrics"
	"storefront-orders/models"
	"sync"
	"time"
)

var _ interfaces.OrderHistory = (*Cache)(nil)

// Cache keeps recently submitted orders for the order-history view.
// It is never filled from the remote order log.
type Cache struct {
	mu      sync.RWMutex
	orders  map[string]cacheItem
	ttl     time.Duration
	maxSize int
	stop    chan struct{}
	once    sync.Once
}

type cacheItem struct {
	record    *models.OrderRecord
	createdAt time.Time
}

func New(ttl time.Duration, maxSize int) *Cache {
	c := &Cache{
		orders:  make(map[string]cacheItem),
		ttl:     ttl,
		maxSize: maxSize,
		stop:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

func (c *Cache) Get(orderID string) (*models.OrderRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.orders[orderID]
	if ok && time.Since(item.createdAt) <= c.ttl {
		metrics.CacheOperations.WithLabelValues("get", "hit").Inc()
		return item.record, true
	}

	metrics.CacheOperations.WithLabelValues("get", "miss").Inc()
	return nil, false
}

func (c *Cache) Set(orderID string, record *models.OrderRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.orders[orderID]; !exists && len(c.orders) >= c.maxSize {
		c.evictOldest()
	}

	c.orders[orderID] = cacheItem{record: record, createdAt: time.Now()}

	metrics.CacheOperations.WithLabelValues("set", "success").Inc()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.orders)
}

// Close stops the background cleanup.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, item := range c.orders {
		if oldestTime.IsZero() || item.createdAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.createdAt
		}
	}

	if oldestKey != "" {
		delete(c.orders, oldestKey)
	}
}

func (c *Cache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			for id, item := range c.orders {
				if time.Since(item.createdAt) > c.ttl {
					delete(c.orders, id)
				}
			}
			c.mu.Unlock()
		}
	}
}
