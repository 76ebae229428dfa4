package player

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/monarchbot/arise/internal/domain"
	"github.com/monarchbot/arise/internal/metrics"
)

const (
	defaultCacheSize = 1000
	defaultCacheTTL  = 5 * time.Minute
)

// playerCache is a bounded TTL cache of hydrated players. It replaces the
// unbounded per-process map the bot used to grow until restart.
type playerCache struct {
	lru *expirable.LRU[int64, *domain.Player]
}

func newPlayerCache(size int, ttl time.Duration) *playerCache {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &playerCache{
		lru: expirable.NewLRU[int64, *domain.Player](size, nil, ttl),
	}
}

func (c *playerCache) get(id int64) (*domain.Player, bool) {
	p, ok := c.lru.Get(id)
	if ok {
		metrics.PlayerCacheHits.Inc()
	} else {
		metrics.PlayerCacheMisses.Inc()
	}
	return p, ok
}

func (c *playerCache) put(p *domain.Player) {
	c.lru.Add(p.ID, p)
}

func (c *playerCache) remove(id int64) {
	c.lru.Remove(id)
}
