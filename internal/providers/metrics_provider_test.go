package providers

import (
	"context"
	"io"
	"lrn/internal/structures"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("fcm.googleapis.com", 200)
	m.ObserveRequestDuration("fcm.googleapis.com", time.Millisecond)
	m.IncCacheHits(CacheCanonical)
	m.IncCacheMisses(CacheTopic)
	m.ObservePersistenceDuration(time.Millisecond)
	m.SetRecordsTotal("results", 10)
	m.AddFetched("loteriasdominicanas.com", 3)
	m.SetDeltaSize(2)
	m.IncNotifications(OutcomeSent)
	assert.NoError(t, m.Push(context.Background()))
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m, ok := NewMetricsProvider(conf).(*MetricsProvider)
	require.True(t, ok, "should return MetricsProvider when enabled")

	m.IncRequestsTotal("fcm.googleapis.com", 200)
	m.IncRequestsTotal("fcm.googleapis.com", 404)
	m.IncNotifications(OutcomeSent)
	m.IncNotifications(OutcomeSent)
	m.IncNotifications(OutcomeSkipped)
	m.AddFetched("tusnumerosrd.com", 7)
	m.SetRecordsTotal("results", 42)
	m.IncCacheHits(CacheCanonical)
	m.IncCacheMisses(CacheTopic)

	assert.Equal(t, 2.0, promtest.ToFloat64(m.notificationsTotal.WithLabelValues(OutcomeSent)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.notificationsTotal.WithLabelValues(OutcomeSkipped)))
	assert.Equal(t, 7.0, promtest.ToFloat64(m.fetchedTotal.WithLabelValues("tusnumerosrd.com")))
	assert.Equal(t, 42.0, promtest.ToFloat64(m.recordsTotal.WithLabelValues("results")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.requestsTotal.WithLabelValues("fcm.googleapis.com", "4xx")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.cacheHits.WithLabelValues(CacheCanonical)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.cacheMisses.WithLabelValues(CacheTopic)))
}

func TestMetricsProvider_TwoInstancesDoNotCollide(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	assert.NotPanics(t, func() {
		NewMetricsProvider(conf)
		NewMetricsProvider(conf)
	})
}

func TestMetricsProvider_PushWithoutGateway(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	assert.NoError(t, m.Push(context.Background()))
}

func TestMetricsProvider_PushToGateway(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true, PushgatewayURL: srv.URL, Job: "lrn_test"},
	}
	m := NewMetricsProvider(conf)
	m.SetDeltaSize(3)

	require.NoError(t, m.Push(context.Background()))
	assert.Equal(t, "/metrics/job/lrn_test", gotPath)
	assert.NotEmpty(t, gotBody)
}

func TestMetricsProvider_PushGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true, PushgatewayURL: srv.URL},
	}
	m := NewMetricsProvider(conf)
	assert.Error(t, m.Push(context.Background()))
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{0, "error"},
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
