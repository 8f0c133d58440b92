package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/quietfeed/quietfeed/internal/adapters/upstream"
	"github.com/quietfeed/quietfeed/pkg/logger"
	"github.com/quietfeed/quietfeed/pkg/models"
)

const keyPrefix = "headlines:daily:"

// Store is the cache payload backend
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Locker serializes the fill of one cache key across processes
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) bool
	Release(ctx context.Context, key string)
}

// Processor turns raw upstream records into formatted headlines
type Processor interface {
	Process(ctx context.Context, raw []upstream.RawRecord) ([]models.FormattedHeadline, error)
}

// Daily serves formatted headlines behind a per-calendar-day cache key.
//
// The key uses the server's local date. The TTL is a fixed window from
// write time rather than being aligned to midnight, so a payload written
// late in the day intentionally outlives its calendar day.
type Daily struct {
	store    Store
	lock     Locker
	provider upstream.Provider
	pipeline Processor
	ttl      time.Duration
	now      func() time.Time
}

// NewDaily creates the daily headline cache
func NewDaily(store Store, lock Locker, provider upstream.Provider, pipeline Processor, ttl time.Duration) *Daily {
	return &Daily{
		store:    store,
		lock:     lock,
		provider: provider,
		pipeline: pipeline,
		ttl:      ttl,
		now:      time.Now,
	}
}

// FetchHeadlines returns today's headlines, filling the cache on a miss.
// Any upstream or processing failure degrades to yesterday's payload or
// an empty list; no error ever reaches the caller.
func (d *Daily) FetchHeadlines(ctx context.Context) []models.FormattedHeadline {
	key := d.dayKey(0)

	if payload, ok := d.read(ctx, key); ok {
		return payload
	}

	// One filler per key; everyone else waits for the lock, then
	// re-reads what the filler cached
	lockCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if d.lock.Acquire(lockCtx, key, 30*time.Second) {
		defer d.lock.Release(ctx, key)
	}

	if payload, ok := d.read(ctx, key); ok {
		return payload
	}

	records, err := d.provider.FetchRaw(ctx)
	if err != nil {
		logger.Error("failed to fetch headlines from upstream",
			zap.String("key", key),
			zap.Error(err),
		)
		return d.fallback(ctx)
	}

	formatted, err := d.pipeline.Process(ctx, records)
	if err != nil {
		logger.Error("failed to process headlines",
			zap.String("key", key),
			zap.Error(err),
		)
		return d.fallback(ctx)
	}

	d.write(ctx, key, formatted)
	return formatted
}

// fallback returns yesterday's cached payload, or an empty list
func (d *Daily) fallback(ctx context.Context) []models.FormattedHeadline {
	if payload, ok := d.read(ctx, d.dayKey(-1)); ok {
		logger.Info("serving yesterday's cached headlines")
		return payload
	}
	return []models.FormattedHeadline{}
}

func (d *Daily) dayKey(dayOffset int) string {
	return keyPrefix + d.now().AddDate(0, 0, dayOffset).Format("2006-01-02")
}

func (d *Daily) read(ctx context.Context, key string) ([]models.FormattedHeadline, bool) {
	raw, ok, err := d.store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var payload []models.FormattedHeadline
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Warn("discarding unreadable cache payload",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}

	return payload, true
}

func (d *Daily) write(ctx context.Context, key string, payload []models.FormattedHeadline) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Warn("failed to encode cache payload",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	if err := d.store.Set(ctx, key, string(raw), d.ttl); err != nil {
		logger.Warn("cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
