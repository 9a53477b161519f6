package providers

import (
	"context"
	"sync"
	"time"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

type recordingMetrics struct {
	mu              sync.Mutex
	hits            map[string]int
	misses          map[string]int
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *recordingMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *recordingMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durationCalls++
}
func (m *recordingMetrics) IncCacheHits(namespace string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hits == nil {
		m.hits = map[string]int{}
	}
	m.hits[namespace]++
}
func (m *recordingMetrics) IncCacheMisses(namespace string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.misses == nil {
		m.misses = map[string]int{}
	}
	m.misses[namespace]++
}
func (m *recordingMetrics) ObservePersistenceDuration(_ time.Duration) {}
func (m *recordingMetrics) SetRecordsTotal(_ string, _ int)            {}
func (m *recordingMetrics) AddFetched(_ string, _ int)                 {}
func (m *recordingMetrics) SetDeltaSize(_ int)                         {}
func (m *recordingMetrics) IncNotifications(_ string)                  {}
func (m *recordingMetrics) Push(_ context.Context) error               { return nil }
