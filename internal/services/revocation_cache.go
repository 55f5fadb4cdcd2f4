package services

import (
	"sync"
)

// RevocationCache is an in-process, additive-only set of revoked jtis used
// to shortcut store lookups on the hot verification path. Revocation is
// monotonic (once revoked, always revoked), so entries never need eviction.
// The durable store remains the source of truth; a miss here always falls
// through to the store, so a cold or partial cache never admits a revoked
// token.
type RevocationCache struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

func NewRevocationCache() *RevocationCache {
	return &RevocationCache{
		revoked: make(map[string]struct{}),
	}
}

func (c *RevocationCache) Add(jti string) {
	c.mu.Lock()
	c.revoked[jti] = struct{}{}
	c.mu.Unlock()
}

func (c *RevocationCache) AddAll(jtis []string) {
	c.mu.Lock()
	for _, jti := range jtis {
		c.revoked[jti] = struct{}{}
	}
	c.mu.Unlock()
}

func (c *RevocationCache) Contains(jti string) bool {
	c.mu.RLock()
	_, ok := c.revoked[jti]
	c.mu.RUnlock()
	return ok
}
