package services

import (
	"context"
	"errors"
	"fmt"
	"lrn/internal/models"
	"lrn/internal/providers"
	"lrn/internal/testutil"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatchFixture struct {
	service *DispatchService
	sink    *testutil.MockSink
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	t.Helper()
	f := &dispatchFixture{
		sink:    &testutil.MockSink{},
		logger:  &testutil.MockLogger{},
		metrics: testutil.NewMockMetrics(),
	}
	f.service = NewDispatchService(testConfig(), f.logger, f.sink, newTestResolver(t, testNow), newTestCanonicalizer(), f.metrics).(*DispatchService)
	return f
}

func renderMessages(msgs []testutil.SentMessage) []byte {
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "topic: %s\ncollapse_key: %s\nttl: %d\n", m.Topic, m.CollapseKey, m.TTLSeconds)
		keys := make([]string, 0, len(m.Data))
		for k := range m.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %q\n", k, m.Data[k])
		}
	}
	return []byte(b.String())
}

func TestDispatch_PayloadsGolden(t *testing.T) {
	f := newDispatchFixture(t)
	cache := models.NewSendCache()

	report := f.service.Dispatch(context.Background(), []models.RawResult{
		record("loteriasdominicanas.com", "Leidsa Noche", "2025-07-15", "7", "14", "22"),
		record("loteriasdominicanas.com", "Loteria Nacional Noche", "2025-07-15", "03", "45", "91"),
		withTime(record("tusnumerosrd.com", "Nacional Tarde (Gana Más)", "2025-07-15", "1", "2", "3"), "2:30 PM"),
	}, cache)

	assert.Equal(t, DispatchReport{Lotteries: 3, Sent: 3}, report)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "dispatch_payloads", renderMessages(f.sink.Sent))
}

func TestDispatch_SendsLotteryTopicThenGlobal(t *testing.T) {
	f := newDispatchFixture(t)
	cache := models.NewSendCache()

	f.service.Dispatch(context.Background(), []models.RawResult{
		record("a", "Leidsa Noche", "2025-07-15", "07", "14", "22"),
	}, cache)

	assert.Equal(t, []string{"loteria_quiniela_leidsa", "resultados_loteria"}, f.sink.Topics())
	assert.Equal(t, "loteria_quiniela_leidsa_2025-07-15", f.sink.Sent[0].CollapseKey)
	assert.Equal(t, "resultados_loteria_2025-07-15", f.sink.Sent[1].CollapseKey)
	assert.Equal(t, 3600, f.sink.Sent[0].TTLSeconds)

	at, ok := cache.LastSent("Quiniela Leidsa|2025-07-15|07-14-22")
	require.True(t, ok)
	assert.True(t, testNow.Equal(at))
	assert.Equal(t, 1, f.metrics.Notifications[providers.OutcomeSent])
}

func TestDispatch_SkipsKeyInSendCache(t *testing.T) {
	f := newDispatchFixture(t)
	cache := models.NewSendCache()
	cache.MarkSent("Quiniela Leidsa|2025-07-15|07-14-22", testNow.Add(-2*time.Hour))

	report := f.service.Dispatch(context.Background(), []models.RawResult{
		withTime(record("tusnumerosrd.com", "Quiniela Leidsa", "2025-07-15", "07", "14", "22"), "7:30PM"),
	}, cache)

	assert.Empty(t, f.sink.Sent)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, f.metrics.Notifications[providers.OutcomeSkipped])
}

func TestDispatch_ExpiredSendCacheEntryDoesNotSuppress(t *testing.T) {
	f := newDispatchFixture(t)
	cache := models.NewSendCache()
	cache.MarkSent("Quiniela Leidsa|2025-07-15|07-14-22", testNow.Add(-73*time.Hour))

	report := f.service.Dispatch(context.Background(), []models.RawResult{
		record("a", "Leidsa Noche", "2025-07-15", "07", "14", "22"),
	}, cache)

	assert.Equal(t, 1, report.Sent)
	assert.Len(t, f.sink.Sent, 2)
	at, ok := cache.LastSent("Quiniela Leidsa|2025-07-15|07-14-22")
	require.True(t, ok)
	assert.True(t, testNow.Equal(at))
}

func TestDispatch_RepeatedRunsNotifyOnce(t *testing.T) {
	f := newDispatchFixture(t)
	cache := models.NewSendCache()
	records := []models.RawResult{
		record("a", "Leidsa Noche", "2025-07-15", "07", "14", "22"),
		record("a", "Real Tarde", "2025-07-15", "01", "02", "03"),
	}

	first := f.service.Dispatch(context.Background(), records, cache)
	second := f.service.Dispatch(context.Background(), records, cache)

	assert.Equal(t, 2, first.Sent)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, f.sink.Sent, 4)
}

func TestDispatch_PicksLatestInstantPerLottery(t *testing.T) {
	f := newDispatchFixture(t)

	f.service.Dispatch(context.Background(), []models.RawResult{
		withTime(record("a", "Anguila Tarde 3PM", "2025-07-15", "10", "20", "30"), "3:00 PM"),
		withTime(record("a", "Anguila Tarde 6:00PM", "2025-07-15", "40", "50", "60"), "6:00 PM"),
		withTime(record("a", "Anguila Tarde 1:00PM", "2025-07-15", "11", "21", "31"), "1:00 PM"),
	}, models.NewSendCache())

	require.Len(t, f.sink.Sent, 2)
	assert.Equal(t, "loteria_anguila_tarde", f.sink.Sent[0].Topic)
	assert.Equal(t, "40-50-60", f.sink.Sent[0].Data["numbers"])
}

func TestDispatch_EqualInstantGoesToLaterRecord(t *testing.T) {
	f := newDispatchFixture(t)

	f.service.Dispatch(context.Background(), []models.RawResult{
		record("a", "Leidsa Noche", "2025-07-15", "07", "14", "22"),
		record("b", "Leidsa Noche", "2025-07-15", "08", "15", "23"),
	}, models.NewSendCache())

	require.Len(t, f.sink.Sent, 2)
	assert.Equal(t, "08-15-23", f.sink.Sent[0].Data["numbers"])
	assert.Equal(t, "b", f.sink.Sent[0].Data["source"])
}

func TestDispatch_SinkUnavailableMarksNothing(t *testing.T) {
	f := newDispatchFixture(t)
	f.sink.Unavailable = true
	cache := models.NewSendCache()

	report := f.service.Dispatch(context.Background(), []models.RawResult{
		record("a", "Leidsa Noche", "2025-07-15", "07", "14", "22"),
	}, cache)

	assert.True(t, report.Unavailable)
	assert.Empty(t, f.sink.Sent)
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, 1, f.logger.Count("warn", "Push sink unavailable"))
}

func TestDispatch_SendFailureStillTriesGlobalAndMarks(t *testing.T) {
	f := newDispatchFixture(t)
	f.sink.ErrFor = map[string]error{"loteria_quiniela_leidsa": errors.New("status 500")}
	cache := models.NewSendCache()

	report := f.service.Dispatch(context.Background(), []models.RawResult{
		record("a", "Leidsa Noche", "2025-07-15", "07", "14", "22"),
		record("a", "Real Tarde", "2025-07-15", "01", "02", "03"),
	}, cache)

	assert.Equal(t, []string{"loteria_quiniela_leidsa", "resultados_loteria", "loteria_quiniela_real", "resultados_loteria"}, f.sink.Topics())
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Sent)
	assert.True(t, cache.WasSent("Quiniela Leidsa|2025-07-15|07-14-22"))
	assert.Equal(t, 1, f.logger.Count("error", "Push to"))
}

func TestDispatch_CancelledContextStops(t *testing.T) {
	f := newDispatchFixture(t)
	cache := models.NewSendCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.service.Dispatch(ctx, []models.RawResult{
		record("a", "Leidsa Noche", "2025-07-15", "07", "14", "22"),
	}, cache)

	assert.Empty(t, f.sink.Sent)
	assert.Equal(t, 0, cache.Len())
}

func TestDispatch_Empty(t *testing.T) {
	f := newDispatchFixture(t)
	assert.Equal(t, DispatchReport{}, f.service.Dispatch(context.Background(), nil, models.NewSendCache()))
}

func TestBuildNotification(t *testing.T) {
	f := newDispatchFixture(t)

	n := f.service.BuildNotification("Quiniela Leidsa", withTime(record("tusnumerosrd.com", "Leidsa Noche", "2025-07-15", "7", "14", "22"), " 8:55 PM "))

	assert.Equal(t, models.NotificationKey("Quiniela Leidsa|2025-07-15|07-14-22"), n.Key)
	assert.Equal(t, "8:55 PM", n.Time)
	assert.Equal(t, "07-14-22", n.Numbers)
	assert.Equal(t, "tusnumerosrd.com", n.Source)
}

func TestTopicFor(t *testing.T) {
	f := newDispatchFixture(t)
	assert.Equal(t, "loteria_la_suerte_18_00", f.service.TopicFor("La Suerte 18:00"))
	assert.Equal(t, "loteria_anguila_manana", f.service.TopicFor("Anguila Mañana"))
}
