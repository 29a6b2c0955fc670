package guide

import (
	"sync"
	"time"
)

type cachedArticle struct {
	article  *Article
	cachedAt time.Time
}

type articleCache struct {
	mu      sync.RWMutex
	entries map[string]cachedArticle
	ttl     time.Duration
}

func newArticleCache(ttl time.Duration) *articleCache {
	return &articleCache{entries: make(map[string]cachedArticle), ttl: ttl}
}

func (c *articleCache) Get(id string) *Article {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok || time.Since(e.cachedAt) > c.ttl {
		return nil
	}
	return e.article
}

func (c *articleCache) Set(id string, a *Article) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = cachedArticle{article: a, cachedAt: time.Now()}
}
