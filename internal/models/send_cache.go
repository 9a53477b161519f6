package models

import (
	"math"
	"sync"
	"time"
)

// SendCache remembers when each notification key was last pushed.
type SendCache struct {
	mu      sync.RWMutex
	entries map[NotificationKey]time.Time
}

func NewSendCache() *SendCache {
	return &SendCache{entries: make(map[NotificationKey]time.Time)}
}

// NewSendCacheFromEpochs restores a cache from its persisted form. Fractional
// seconds written by older versions are accepted.
func NewSendCacheFromEpochs(epochs map[string]float64) *SendCache {
	c := NewSendCache()
	for key, sec := range epochs {
		if math.IsNaN(sec) || math.IsInf(sec, 0) {
			continue
		}
		whole, frac := math.Modf(sec)
		c.entries[NotificationKey(key)] = time.Unix(int64(whole), int64(frac*1e9))
	}
	return c
}

func (c *SendCache) WasSent(key NotificationKey) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// WasSentSince is WasSent restricted to sends at or after cutoff. Entries the
// next purge would drop no longer count.
func (c *SendCache) WasSentSince(key NotificationKey, cutoff time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	at, ok := c.entries[key]
	return ok && !at.Before(cutoff)
}

func (c *SendCache) LastSent(key NotificationKey) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	at, ok := c.entries[key]
	return at, ok
}

func (c *SendCache) MarkSent(key NotificationKey, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = at
}

// PurgeExpired drops entries sent before now-retention and returns how many were removed.
func (c *SendCache) PurgeExpired(now time.Time, retention time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := now.Add(-retention)
	removed := 0
	for key, at := range c.entries {
		if at.Before(cutoff) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Epochs returns the persisted form: key to whole epoch seconds.
func (c *SendCache) Epochs() map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int64, len(c.entries))
	for key, at := range c.entries {
		out[string(key)] = at.Unix()
	}
	return out
}

func (c *SendCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
