package testutil

import (
	"context"
	"lrn/internal/models"
	"lrn/internal/providers"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level whose format contains substr.
func (m *MockLogger) Count(level, substr string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Format, substr) {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string]string
	hits int64
	miss int64
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string]string)}
}

func (m *MockCache) Lookup(namespace, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[namespace+"/"+key]
	if ok {
		m.hits++
	} else {
		m.miss++
	}
	return val, ok
}

func (m *MockCache) Remember(namespace, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[namespace+"/"+key] = value
}

func (m *MockCache) Stats() providers.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return providers.CacheStats{Entries: int64(len(m.Data)), Hits: m.hits, Misses: m.miss}
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface and keeps counters in maps.
type MockMetrics struct {
	mu            sync.Mutex
	Notifications map[string]int
	Fetched       map[string]int
	Records       map[string]int
	Delta         int
	Pushes        int
	PushErr       error
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Notifications: make(map[string]int),
		Fetched:       make(map[string]int),
		Records:       make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits(_ string)                            {}
func (m *MockMetrics) IncCacheMisses(_ string)                          {}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration)       {}

func (m *MockMetrics) SetRecordsTotal(store string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records[store] = count
}

func (m *MockMetrics) AddFetched(source string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetched[source] += count
}

func (m *MockMetrics) SetDeltaSize(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Delta = count
}

func (m *MockMetrics) IncNotifications(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications[outcome]++
}

func (m *MockMetrics) Push(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pushes++
	return m.PushErr
}

// SentMessage is one call captured by MockSink.
type SentMessage struct {
	Topic       string
	Data        map[string]string
	CollapseKey string
	TTLSeconds  int
}

// MockSink implements sink.Sink and records every send.
type MockSink struct {
	mu          sync.Mutex
	Unavailable bool
	// ErrFor makes Send fail for the given topic.
	ErrFor map[string]error
	Sent   []SentMessage
}

func (m *MockSink) Available() bool { return !m.Unavailable }

func (m *MockSink) Send(_ context.Context, topic string, data map[string]string, collapseKey string, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentMessage{Topic: topic, Data: data, CollapseKey: collapseKey, TTLSeconds: ttlSeconds})
	if err, ok := m.ErrFor[topic]; ok {
		return err
	}
	return nil
}

func (m *MockSink) Topics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Sent))
	for _, s := range m.Sent {
		out = append(out, s.Topic)
	}
	return out
}

// MockFetcher implements fetchers.Fetcher with canned output.
type MockFetcher struct {
	SourceName string
	Results    []models.RawResult
	Err        error
	Calls      int
	mu         sync.Mutex
}

func (m *MockFetcher) Name() string { return m.SourceName }

func (m *MockFetcher) Fetch(_ context.Context) ([]models.RawResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	out := make([]models.RawResult, len(m.Results))
	copy(out, m.Results)
	return out, m.Err
}

// FixedClock implements temporal.Clock.
type FixedClock struct {
	mu sync.Mutex
	T  time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{T: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.T
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.T = c.T.Add(d)
}
