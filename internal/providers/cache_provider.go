package providers

import (
	"github.com/coocood/freecache"
	"lrn/internal/structures"
)

// Lookup cache namespaces.
const (
	CacheCanonical = "canonical"
	CacheTopic     = "topic"
)

// CacheStats is a snapshot of the lookup cache counters.
type CacheStats struct {
	Entries int64
	Hits    int64
	Misses  int64
}

// CacheProviderInterface memoizes derived strings (canonical names, topic slugs)
// in separate namespaces, so equal keys in different namespaces never collide.
type CacheProviderInterface interface {
	Lookup(namespace, key string) (string, bool)
	Remember(namespace, key, value string)
	Stats() CacheStats
}

type CacheProvider struct {
	cache *freecache.Cache
	ttl   int
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Infof(TypeApp, "Lookup cache disabled")
		return &noopCache{}
	}

	// freecache treats a non-positive expiry as "never expires"
	ttl := int(conf.Cache.TTL.Seconds())
	logger.Debugf(TypeApp, "Lookup cache: %dMB, TTL=%ds", conf.Cache.Size, ttl)

	return &CacheProvider{
		cache: freecache.NewCache(conf.Cache.Size * 1024 * 1024),
		ttl:   ttl,
	}
}

// cacheKey joins namespace and key with a NUL, which neither ever contains.
func cacheKey(namespace, key string) []byte {
	b := make([]byte, 0, len(namespace)+1+len(key))
	b = append(b, namespace...)
	b = append(b, 0)
	return append(b, key...)
}

func (c *CacheProvider) Lookup(namespace, key string) (string, bool) {
	val, err := c.cache.Get(cacheKey(namespace, key))
	if err != nil {
		return "", false
	}
	return string(val), true
}

func (c *CacheProvider) Remember(namespace, key, value string) {
	_ = c.cache.Set(cacheKey(namespace, key), []byte(value), c.ttl)
}

func (c *CacheProvider) Stats() CacheStats {
	return CacheStats{
		Entries: c.cache.EntryCount(),
		Hits:    c.cache.HitCount(),
		Misses:  c.cache.MissCount(),
	}
}

type noopCache struct{}

func (n *noopCache) Lookup(_, _ string) (string, bool) { return "", false }
func (n *noopCache) Remember(_, _, _ string)           {}
func (n *noopCache) Stats() CacheStats                 { return CacheStats{} }
