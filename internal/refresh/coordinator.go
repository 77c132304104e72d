// Package refresh coordinates cache freshness between the reader-driven
// path and the background polling loop.
package refresh

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/joblinours/cyberdash/internal/common"
	"github.com/joblinours/cyberdash/internal/config"
	"github.com/joblinours/cyberdash/internal/feeds"
	"github.com/joblinours/cyberdash/internal/metrics"
	"github.com/joblinours/cyberdash/internal/models"
)

// Store is the cache surface the coordinator drives.
type Store interface {
	IsFresh(d models.Domain) bool
	Load(d models.Domain) json.RawMessage
	Save(d models.Domain, v any) error
}

// Coordinator serializes refreshes per domain. Readers that hit a stale
// domain trigger a synchronous refresh; concurrent readers of the same
// domain join the in-flight refresh instead of stacking duplicate fetches.
type Coordinator struct {
	store    Store
	provider config.IntervalProvider
	logger   *common.Logger

	adapters map[models.Domain]feeds.Adapter
	order    []models.Domain
	locks    map[models.Domain]*sync.Mutex
}

// New creates a coordinator over the given adapters. Domains keep the
// order the adapters were passed in for background refresh cycles.
func New(store Store, provider config.IntervalProvider, logger *common.Logger, adapters ...feeds.Adapter) *Coordinator {
	c := &Coordinator{
		store:    store,
		provider: provider,
		logger:   logger,
		adapters: make(map[models.Domain]feeds.Adapter, len(adapters)),
		locks:    make(map[models.Domain]*sync.Mutex, len(adapters)),
	}
	for _, a := range adapters {
		d := a.Domain()
		c.adapters[d] = a
		c.order = append(c.order, d)
		c.locks[d] = &sync.Mutex{}
	}
	return c
}

// GetWithCache returns the domain's snapshot, refreshing it first when the
// cache file is stale or missing. The returned value is always valid JSON.
func (c *Coordinator) GetWithCache(ctx context.Context, d models.Domain) json.RawMessage {
	if c.store.IsFresh(d) {
		metrics.CacheReads.WithLabelValues(string(d), "hit").Inc()
		return c.store.Load(d)
	}
	metrics.CacheReads.WithLabelValues(string(d), "miss").Inc()

	lock, ok := c.locks[d]
	if !ok {
		return c.store.Load(d)
	}
	lock.Lock()
	defer lock.Unlock()

	// Another reader may have refreshed while we waited for the lock.
	if c.store.IsFresh(d) {
		return c.store.Load(d)
	}
	return c.fetchAndSaveLocked(ctx, d)
}

// RefreshStale refreshes every domain whose cache is stale. Used at
// startup so the first page load does not eat four upstream round trips.
func (c *Coordinator) RefreshStale(ctx context.Context) {
	for _, d := range c.order {
		if c.store.IsFresh(d) {
			continue
		}
		lock := c.locks[d]
		lock.Lock()
		if !c.store.IsFresh(d) {
			c.fetchAndSaveLocked(ctx, d)
		}
		lock.Unlock()
	}
}

// RefreshAll refreshes every domain unconditionally.
func (c *Coordinator) RefreshAll(ctx context.Context) {
	for _, d := range c.order {
		lock := c.locks[d]
		lock.Lock()
		c.fetchAndSaveLocked(ctx, d)
		lock.Unlock()
	}
}

// Run drives the background refresh loop until ctx is cancelled. The
// interval is re-read from the provider on every cycle so operator changes
// take effect without a restart.
func (c *Coordinator) Run(ctx context.Context) {
	c.RefreshStale(ctx)
	for {
		interval := c.provider.RefreshInterval()
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("background refresh loop stopping")
			return
		case <-time.After(interval):
		}
		c.RefreshAll(ctx)
	}
}

// fetchAndSaveLocked fetches the domain and persists the result. The
// caller must hold the domain lock. A failing adapter still yields a
// usable value; a failing save is logged and swallowed so one bad disk
// write never takes a domain down.
func (c *Coordinator) fetchAndSaveLocked(ctx context.Context, d models.Domain) json.RawMessage {
	adapter := c.adapters[d]

	start := time.Now()
	value, err := adapter.Fetch(ctx)
	metrics.FetchDuration.WithLabelValues(string(d)).Observe(time.Since(start).Seconds())

	outcome := "ok"
	if err != nil {
		outcome = "degraded"
		c.logger.Warn().Str("domain", string(d)).Err(err).Msg("fetch degraded, caching partial value")
	}
	metrics.FetchTotal.WithLabelValues(string(d), outcome).Inc()

	data, merr := json.Marshal(value)
	if merr != nil {
		c.logger.Error().Str("domain", string(d)).Err(merr).Msg("snapshot not serializable, serving previous value")
		return c.store.Load(d)
	}

	if serr := c.store.Save(d, value); serr != nil {
		metrics.SaveFailures.WithLabelValues(string(d)).Inc()
		c.logger.Warn().Str("domain", string(d)).Err(serr).Msg("cache save failed, serving in-memory value")
	}
	return data
}
