package providers

import (
	"net/http"
	"time"
)

// MetricsTransport is an http.RoundTripper that records request count and latency
// per target host.
type MetricsTransport struct {
	Base    http.RoundTripper
	Metrics MetricsProviderInterface
}

func NewMetricsTransport(base http.RoundTripper, metrics MetricsProviderInterface) *MetricsTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &MetricsTransport{Base: base, Metrics: metrics}
}

func (t *MetricsTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Base.RoundTrip(r)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	endpoint := r.URL.Host
	t.Metrics.IncRequestsTotal(endpoint, status)
	t.Metrics.ObserveRequestDuration(endpoint, time.Since(start))

	return resp, err
}
