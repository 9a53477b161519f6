package providers

import "lrn/internal/structures"

// instrumentedCache reports every lookup as a hit or miss of its namespace.
type instrumentedCache struct {
	CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *instrumentedCache) Lookup(namespace, key string) (string, bool) {
	val, ok := c.CacheProviderInterface.Lookup(namespace, key)
	if ok {
		c.metrics.IncCacheHits(namespace)
	} else {
		c.metrics.IncCacheMisses(namespace)
	}
	return val, ok
}

// NewInstrumentedCacheProvider leaves a disabled cache unwrapped, so that its
// lookups are not reported as misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &instrumentedCache{CacheProviderInterface: inner, metrics: metrics}
}
