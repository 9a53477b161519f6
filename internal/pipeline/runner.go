package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"lrn/internal/fetchers"
	"lrn/internal/models"
	"lrn/internal/providers"
	"lrn/internal/services"
	"lrn/internal/storage"
	"lrn/internal/structures"
	"lrn/internal/temporal"
)

// RunReport describes what one pass did.
type RunReport struct {
	RunID   string
	Fetched map[string]int
	// FailedSources lists the sources whose fetch returned an error.
	FailedSources []string
	NoInput       bool
	// Interrupted is set when the context was cancelled before the store was touched.
	Interrupted bool
	Reconciled  *services.Reconciliation
	Stored      int
	Purged      int
	Dispatch    services.DispatchReport
}

type RunnerInterface interface {
	Run(ctx context.Context) (*RunReport, error)
}

type Runner struct {
	config      *structures.Config
	logger      providers.Logger
	sources     fetchers.Sources
	reconciler  services.ReconcileServiceInterface
	dispatcher  services.DispatchServiceInterface
	fileManager *storage.FileManager
	lock        *storage.Lock
	resolver    *temporal.Resolver
	metrics     providers.MetricsProviderInterface
	cache       providers.CacheProviderInterface
	opsMu       sync.Mutex
}

func NewRunner(config *structures.Config, logger providers.Logger, sources fetchers.Sources, reconciler services.ReconcileServiceInterface, dispatcher services.DispatchServiceInterface, fileManager *storage.FileManager, lock *storage.Lock, resolver *temporal.Resolver, metrics providers.MetricsProviderInterface, cache providers.CacheProviderInterface) RunnerInterface {
	return &Runner{
		config:      config,
		logger:      logger,
		sources:     sources,
		reconciler:  reconciler,
		dispatcher:  dispatcher,
		fileManager: fileManager,
		lock:        lock,
		resolver:    resolver,
		metrics:     metrics,
		cache:       cache,
	}
}

// Run performs one fetch, reconcile, dispatch and persist pass. Only a failure
// to take the store lock is returned as an error; everything else is logged and
// reflected in the report. Cancellation during the fetch ends the run before the
// lock is taken.
func (r *Runner) Run(ctx context.Context) (*RunReport, error) {
	r.opsMu.Lock()
	defer r.opsMu.Unlock()

	report := &RunReport{RunID: uuid.NewString(), Fetched: make(map[string]int)}
	r.logger.Infof(providers.TypeApp, "Run %s started with %d sources", report.RunID, len(r.sources))
	defer r.pushMetrics(ctx)

	raw := r.fetchAll(ctx, report)
	if len(raw) == 0 {
		report.NoInput = true
		r.logger.Infof(providers.TypeApp, "Run %s: no input from any source, nothing to do", report.RunID)
		return report, nil
	}

	if err := ctx.Err(); err != nil {
		report.Interrupted = true
		r.logger.Warnf(providers.TypeApp, "Run %s interrupted after fetching, store left untouched: %s", report.RunID, err)
		return report, nil
	}

	if err := r.lock.Acquire(ctx); err != nil {
		return report, fmt.Errorf("acquire store lock: %w", err)
	}
	defer func() {
		if err := r.lock.Release(); err != nil {
			r.logger.Errorf(providers.TypeStore, "Releasing lock %s: %s", r.lock.Path(), err)
		}
	}()

	persistence := r.config.Persistence
	store := models.NewResultStore(r.fileManager.LoadResults(persistence.StorePath))
	cache := r.fileManager.LoadSendCache(persistence.SendCachePath)

	rec := r.reconciler.Reconcile(store, raw)
	report.Reconciled = rec
	r.metrics.SetDeltaSize(len(rec.Delta))

	report.Dispatch = r.dispatcher.Dispatch(ctx, rec.Compacted, cache)

	if added := store.Append(rec.Delta); added > 0 {
		r.logSaveError(persistence.StorePath, r.fileManager.SaveResults(persistence.StorePath, store.All(), r.resolver.Now()))
	}
	report.Stored = store.Len()

	if retention := r.config.SendCache.Retention; retention > 0 {
		report.Purged = cache.PurgeExpired(r.resolver.Now(), retention)
		if report.Purged > 0 {
			r.logger.Debugf(providers.TypeStore, "Purged %d send cache entries older than %s", report.Purged, retention)
		}
	}
	r.logSaveError(persistence.SendCachePath, r.fileManager.SaveSendCache(persistence.SendCachePath, cache))

	r.logSummary(report)
	return report, nil
}

// fetchAll runs every source concurrently and concatenates their output in
// source order.
func (r *Runner) fetchAll(ctx context.Context, report *RunReport) []models.RawResult {
	batches := make([][]models.RawResult, len(r.sources))
	errs := make([]error, len(r.sources))

	var wg sync.WaitGroup
	for i, source := range r.sources {
		wg.Add(1)
		go func(i int, source fetchers.Fetcher) {
			defer wg.Done()
			batches[i], errs[i] = source.Fetch(ctx)
		}(i, source)
	}
	wg.Wait()

	var raw []models.RawResult
	for i, source := range r.sources {
		name := source.Name()
		if errs[i] != nil {
			report.FailedSources = append(report.FailedSources, name)
			r.logger.Errorf(providers.TypeFetch, "Fetching %s failed: %s", name, errs[i])
		}
		report.Fetched[name] = len(batches[i])
		r.metrics.AddFetched(name, len(batches[i]))
		raw = append(raw, batches[i]...)
	}
	return raw
}

func (r *Runner) logSaveError(fileName string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrUnreadable):
		r.logger.Warnf(providers.TypeStore, "Not saving %s: %s", fileName, err)
	default:
		r.logger.Errorf(providers.TypeStore, "Saving %s: %s", fileName, err)
	}
}

func (r *Runner) pushMetrics(ctx context.Context) {
	if err := r.metrics.Push(ctx); err != nil {
		r.logger.Warnf(providers.TypeApp, "Pushing metrics failed: %s", err)
	}
}

func (r *Runner) logSummary(report *RunReport) {
	names := make([]string, 0, len(report.Fetched))
	for name := range report.Fetched {
		names = append(names, name)
	}
	sort.Strings(names)
	fetched := make([]string, 0, len(names))
	for _, name := range names {
		fetched = append(fetched, fmt.Sprintf("%s=%d", name, report.Fetched[name]))
	}

	rec := report.Reconciled
	d := report.Dispatch
	r.logger.Infof(providers.TypeApp, "Run %s done: fetched [%s], dropped %d, delta %d, compacted %d, stored %d, sent %d, skipped %d, failed %d",
		report.RunID, strings.Join(fetched, " "), rec.Dropped, len(rec.Delta), len(rec.Compacted), report.Stored, d.Sent, d.Skipped, d.Failed)
	stats := r.cache.Stats()
	r.logger.Debugf(providers.TypeApp, "Lookup cache: %d entries, %d hits, %d misses", stats.Entries, stats.Hits, stats.Misses)
}
