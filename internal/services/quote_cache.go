package services

import (
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/shopspring/decimal"
)

// Quote is a price observed at a point in time.
type Quote struct {
	Price decimal.Decimal
	At    time.Time
}

type cachedQuote struct {
	quote    Quote
	storedAt time.Time
}

// QuoteCache keeps recent quotes for a limited time. When it holds more than
// maxEntries quotes the least recently used one is evicted.
type QuoteCache struct {
	ttl time.Duration
	now Clock

	mu      sync.Mutex
	entries *lru.Cache
}

// NewQuoteCache returns nil when ttl or maxEntries disable caching; a nil
// cache is valid and never hits.
func NewQuoteCache(ttl time.Duration, maxEntries int, now Clock) *QuoteCache {
	if ttl <= 0 || maxEntries <= 0 {
		return nil
	}
	if now == nil {
		now = time.Now
	}
	return &QuoteCache{ttl: ttl, now: now, entries: lru.New(maxEntries)}
}

// Get returns the cached quote of symbol unless it has expired.
func (c *QuoteCache) Get(symbol string) (Quote, bool) {
	if c == nil {
		return Quote{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries.Get(symbol)
	if !ok {
		return Quote{}, false
	}
	e := v.(cachedQuote)
	if c.now().Sub(e.storedAt) >= c.ttl {
		c.entries.Remove(symbol)
		return Quote{}, false
	}
	return e.quote, true
}

func (c *QuoteCache) Put(symbol string, q Quote) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Add(symbol, cachedQuote{quote: q, storedAt: c.now()})
}

func (c *QuoteCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
