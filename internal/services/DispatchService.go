package services

import (
	"context"
	"time"

	"lrn/internal/canonical"
	"lrn/internal/models"
	"lrn/internal/providers"
	"lrn/internal/sink"
	"lrn/internal/structures"
	"lrn/internal/temporal"
)

// DispatchReport summarizes one dispatch pass, one entry per canonical lottery.
type DispatchReport struct {
	Lotteries   int
	Sent        int
	Skipped     int
	Failed      int
	Unavailable bool
}

type DispatchServiceInterface interface {
	Dispatch(ctx context.Context, compacted []models.RawResult, cache *models.SendCache) DispatchReport
	BuildNotification(canonicalName string, rec models.RawResult) *models.Notification
}

type DispatchService struct {
	conf     *structures.Config
	logger   providers.Logger
	sink     sink.Sink
	resolver *temporal.Resolver
	canon    canonical.CanonicalizerInterface
	metrics  providers.MetricsProviderInterface
}

func NewDispatchService(conf *structures.Config, logger providers.Logger, s sink.Sink, resolver *temporal.Resolver, canon canonical.CanonicalizerInterface, metrics providers.MetricsProviderInterface) DispatchServiceInterface {
	return &DispatchService{
		conf:     conf,
		logger:   logger,
		sink:     s,
		resolver: resolver,
		canon:    canon,
		metrics:  metrics,
	}
}

type dispatchCandidate struct {
	record  models.RawResult
	instant time.Time
}

// Dispatch pushes the latest result of every lottery in compacted, unless its
// notification key is already in the send cache. A key is marked once both the
// lottery topic and the global topic sends were attempted.
func (ds *DispatchService) Dispatch(ctx context.Context, compacted []models.RawResult, cache *models.SendCache) DispatchReport {
	var report DispatchReport
	if len(compacted) == 0 {
		return report
	}

	order, latest := ds.latestPerLottery(compacted)
	report.Lotteries = len(order)

	if !ds.sink.Available() {
		report.Unavailable = true
		ds.logger.Warnf(providers.TypeDispatch, "Push sink unavailable, %d lotteries not notified", len(order))
		return report
	}

	ttl := int(ds.conf.Dispatch.TTL.Seconds())
	sent := cache.WasSent
	if retention := ds.conf.SendCache.Retention; retention > 0 {
		cutoff := ds.resolver.Now().Add(-retention)
		sent = func(key models.NotificationKey) bool { return cache.WasSentSince(key, cutoff) }
	}
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			ds.logger.Warnf(providers.TypeDispatch, "Dispatch interrupted before %s: %s", name, err)
			break
		}

		n := ds.BuildNotification(name, latest[name].record)
		if sent(n.Key) {
			report.Skipped++
			ds.metrics.IncNotifications(providers.OutcomeSkipped)
			ds.logger.Debugf(providers.TypeDispatch, "Already notified %s, skipping", n.Key)
			continue
		}

		failed := false
		data := n.Data()
		for _, topic := range []string{ds.TopicFor(name), ds.conf.Dispatch.GlobalTopic} {
			if err := ds.sink.Send(ctx, topic, data, n.CollapseKey(topic), ttl); err != nil {
				failed = true
				ds.logger.Errorf(providers.TypeDispatch, "Push to %s for %s failed: %s", topic, n.Key, err)
			}
		}
		cache.MarkSent(n.Key, ds.resolver.Now())

		if failed {
			report.Failed++
			ds.metrics.IncNotifications(providers.OutcomeFailed)
			continue
		}
		report.Sent++
		ds.metrics.IncNotifications(providers.OutcomeSent)
		ds.logger.Infof(providers.TypeDispatch, "Notified %s (%s %s)", n.Key, n.Date, n.Time)
	}
	return report
}

// latestPerLottery picks, per canonical name, the record with the latest instant.
// Equal instants go to the later record.
func (ds *DispatchService) latestPerLottery(records []models.RawResult) ([]string, map[string]dispatchCandidate) {
	var order []string
	latest := make(map[string]dispatchCandidate)

	for _, r := range records {
		instant, ok := ds.resolver.ResolveInstant(r)
		if !ok {
			continue
		}
		name := ds.canon.Canonicalize(r.LotteryNameRaw)
		cur, seen := latest[name]
		if !seen {
			order = append(order, name)
		}
		if !seen || !instant.Before(cur.instant) {
			latest[name] = dispatchCandidate{record: r, instant: instant}
		}
	}
	return order, latest
}

func (ds *DispatchService) BuildNotification(canonicalName string, rec models.RawResult) *models.Notification {
	return &models.Notification{
		Key:     models.NewNotificationKey(canonicalName, rec.DateNormalized, rec.Numbers),
		Lottery: canonicalName,
		Date:    rec.DateNormalized,
		Time:    rec.TimeValue(),
		Numbers: models.FormatNumbers(rec.Numbers),
		Source:  rec.Source,
	}
}

// TopicFor is the per-lottery topic, e.g. "loteria_quiniela_leidsa".
func (ds *DispatchService) TopicFor(canonicalName string) string {
	return ds.conf.Dispatch.TopicPrefix + ds.canon.Slug(canonicalName)
}
