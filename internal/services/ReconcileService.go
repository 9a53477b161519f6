package services

import (
	"lrn/internal/models"
	"lrn/internal/providers"
	"lrn/internal/temporal"
)

const dateLayout = "2006-01-02"

// PrepareStats counts why raw records did not make it into today's candidates.
type PrepareStats struct {
	Dropped    int
	Unresolved int
	NotToday   int
}

// Reconciliation is the outcome of one pass over freshly fetched records.
type Reconciliation struct {
	PrepareStats
	Today []models.RawResult
	// Delta is what the store appends, before compaction.
	Delta []models.RawResult
	// Compacted is Delta with one record per draw, handed to the dispatcher.
	Compacted []models.RawResult
}

type ReconcileServiceInterface interface {
	Prepare(raw []models.RawResult) ([]models.RawResult, PrepareStats)
	ComputeDelta(store *models.ResultStore, today []models.RawResult) []models.RawResult
	Reconcile(store *models.ResultStore, raw []models.RawResult) *Reconciliation
}

type ReconcileService struct {
	resolver *temporal.Resolver
	merger   MergeServiceInterface
	logger   providers.Logger
}

func NewReconcileService(resolver *temporal.Resolver, merger MergeServiceInterface, logger providers.Logger) ReconcileServiceInterface {
	return &ReconcileService{
		resolver: resolver,
		merger:   merger,
		logger:   logger,
	}
}

// Prepare drops incomplete records and keeps only those dated today, with their
// normalized date set from the resolved instant.
func (rs *ReconcileService) Prepare(raw []models.RawResult) ([]models.RawResult, PrepareStats) {
	var stats PrepareStats
	today := make([]models.RawResult, 0, len(raw))

	for _, r := range raw {
		if !r.IsComplete() {
			stats.Dropped++
			rs.logger.Warnf(providers.TypeReconcile, "Dropping incomplete record from %s: lottery=%q numbers=%v", r.Source, r.LotteryNameRaw, r.Numbers)
			continue
		}
		instant, ok := rs.resolver.ResolveInstant(r)
		if !ok {
			stats.Unresolved++
			rs.logger.Debugf(providers.TypeReconcile, "Unresolvable date %q for %s from %s", r.DateRaw, r.LotteryNameRaw, r.Source)
			continue
		}
		if !rs.resolver.IsToday(instant) {
			stats.NotToday++
			continue
		}
		r.DateNormalized = instant.Format(dateLayout)
		today = append(today, r)
	}
	return today, stats
}

func (rs *ReconcileService) ComputeDelta(store *models.ResultStore, today []models.RawResult) []models.RawResult {
	return store.FilterNew(today)
}

func (rs *ReconcileService) Reconcile(store *models.ResultStore, raw []models.RawResult) *Reconciliation {
	today, stats := rs.Prepare(raw)
	delta := rs.ComputeDelta(store, today)
	compacted := rs.merger.Compact(delta)

	rs.logger.Infof(providers.TypeReconcile, "Reconciled %d raw records: %d today, %d new, %d after merge (dropped %d, unresolved %d, other days %d)",
		len(raw), len(today), len(delta), len(compacted), stats.Dropped, stats.Unresolved, stats.NotToday)

	return &Reconciliation{
		PrepareStats: stats,
		Today:        today,
		Delta:        delta,
		Compacted:    compacted,
	}
}
