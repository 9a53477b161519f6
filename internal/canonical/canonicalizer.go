package canonical

import "lrn/internal/providers"

type CanonicalizerInterface interface {
	Canonicalize(raw string) string
	Slug(name string) string
}

// Canonicalizer memoizes Canonicalize and Slug in the lookup cache. Each source
// repeats the same few dozen names on every page, so most calls are hits.
type Canonicalizer struct {
	cache providers.CacheProviderInterface
}

func NewCanonicalizer(cache providers.CacheProviderInterface) CanonicalizerInterface {
	return &Canonicalizer{cache: cache}
}

func (c *Canonicalizer) Canonicalize(raw string) string {
	return c.memo(providers.CacheCanonical, raw, Canonicalize)
}

func (c *Canonicalizer) Slug(name string) string {
	return c.memo(providers.CacheTopic, name, Slug)
}

func (c *Canonicalizer) memo(namespace, key string, derive func(string) string) string {
	if v, ok := c.cache.Lookup(namespace, key); ok {
		return v
	}
	v := derive(key)
	c.cache.Remember(namespace, key, v)
	return v
}
