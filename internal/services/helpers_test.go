package services

import (
	"lrn/internal/canonical"
	"lrn/internal/models"
	"lrn/internal/structures"
	"lrn/internal/temporal"
	"lrn/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var localZone = time.FixedZone("AST", -4*3600)

// evening of 2025-07-15 in the local zone
var testNow = time.Date(2025, 7, 15, 21, 30, 0, 0, localZone)

func testConfig() *structures.Config {
	return &structures.Config{
		Timezone:  structures.TimezoneConfig{Offset: "-04:00"},
		SendCache: structures.SendCacheConfig{Retention: 72 * time.Hour},
		Dispatch: structures.DispatchConfig{
			GlobalTopic: "resultados_loteria",
			TopicPrefix: "loteria_",
			TTL:         time.Hour,
		},
	}
}

func newTestResolver(t *testing.T, now time.Time) *temporal.Resolver {
	t.Helper()
	r, err := temporal.NewResolver(testConfig(), testutil.NewFixedClock(now))
	require.NoError(t, err)
	return r
}

func newTestCanonicalizer() canonical.CanonicalizerInterface {
	return canonical.NewCanonicalizer(testutil.NewMockCache())
}

func record(source, name, date string, numbers ...string) models.RawResult {
	return models.RawResult{
		Source:         source,
		LotteryNameRaw: name,
		Numbers:        numbers,
		DateRaw:        date,
		DateNormalized: date,
		ObservedAt:     "2025-07-15 21:00:00",
	}
}

func withTime(r models.RawResult, clock string) models.RawResult {
	r.Time = models.StringPtr(clock)
	return r
}

func observedAt(r models.RawResult, ts string) models.RawResult {
	r.ObservedAt = ts
	return r
}
