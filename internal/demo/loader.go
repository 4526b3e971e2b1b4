package demo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/terraincognita07/kira/internal/insights"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	batchLimit          = 3
	defaultFetchTimeout = 10 * time.Second
	indexFlightKey      = "index"
)

// Loader fetches month partitions on demand. Each partition is fetched at
// most once; concurrent requests for the same partition share one fetch.
type Loader struct {
	feed         Feed
	cache        *PartitionCache
	flights      singleflight.Group
	fetchTimeout time.Duration
	log          zerolog.Logger

	mu    sync.RWMutex
	index *Index
}

func NewLoader(feed Feed, fetchTimeout time.Duration, log zerolog.Logger) *Loader {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &Loader{
		feed:         feed,
		cache:        NewPartitionCache(),
		fetchTimeout: fetchTimeout,
		log:          log,
	}
}

func (loader *Loader) Cache() *PartitionCache {
	return loader.cache
}

// Index returns the partition index, fetching it on first use. A failed
// fetch is retried by the next call.
func (loader *Loader) Index(ctx context.Context) (Index, error) {
	loader.mu.RLock()
	cached := loader.index
	loader.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	value, err := loader.shared(ctx, indexFlightKey, func(fetchCtx context.Context) (any, error) {
		index, err := loader.feed.Index(fetchCtx)
		if err != nil {
			return nil, err
		}
		loader.mu.Lock()
		loader.index = &index
		loader.mu.Unlock()
		loader.log.Info().Int("months", len(index.Months)).Int("total_entries", index.TotalEntries).Msg("demo index loaded")
		return index, nil
	})
	if err != nil {
		return Index{}, err
	}
	return value.(Index), nil
}

// Load merges one partition. Keys missing from the index are ignored.
func (loader *Loader) Load(ctx context.Context, key string) error {
	if _, err := ParseMonthKey(key); err != nil {
		return err
	}
	if loader.cache.Has(key) {
		return nil
	}

	index, err := loader.Index(ctx)
	if err != nil {
		return err
	}
	if !index.HasMonth(key) {
		return nil
	}

	_, err = loader.shared(ctx, "month:"+key, func(fetchCtx context.Context) (any, error) {
		if loader.cache.Has(key) {
			return nil, nil
		}
		entries, err := loader.feed.Month(fetchCtx, key)
		if err != nil {
			loader.log.Warn().Err(err).Str("month", key).Msg("demo month load failed")
			return nil, err
		}
		if loader.cache.Merge(key, entries) {
			loader.log.Debug().Str("month", key).Int("entries", len(entries)).Msg("demo month loaded")
		}
		return nil, nil
	})
	return err
}

// LoadRange loads every indexed month the window touches with bounded
// concurrency. Failed months are logged and left for a later call.
func (loader *Loader) LoadRange(ctx context.Context, window insights.Window) error {
	return loader.loadMonths(ctx, window.Months())
}

// LoadAround loads the month of day together with its neighbours.
func (loader *Loader) LoadAround(ctx context.Context, day time.Time) error {
	month := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return loader.loadMonths(ctx, []string{
		MonthKey(month.AddDate(0, -1, 0)),
		MonthKey(month),
		MonthKey(month.AddDate(0, 1, 0)),
	})
}

func (loader *Loader) loadMonths(ctx context.Context, keys []string) error {
	index, err := loader.Index(ctx)
	if err != nil {
		return err
	}

	pending := make([]string, 0, len(keys))
	for _, key := range keys {
		if index.HasMonth(key) && !loader.cache.Has(key) {
			pending = append(pending, key)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(batchLimit)
	for _, key := range pending {
		group.Go(func() error {
			if err := loader.Load(groupCtx, key); err != nil && groupCtx.Err() == nil {
				loader.log.Warn().Err(err).Str("month", key).Msg("demo month skipped")
			}
			return nil
		})
	}
	_ = group.Wait()
	return ctx.Err()
}

// Entries evaluates the window against the working set as it is now.
func (loader *Loader) Entries(window insights.Window) []insights.Entry {
	return loader.cache.Entries(window)
}

func (loader *Loader) EntryForDate(date string) (Entry, bool) {
	return loader.cache.EntryForDate(date)
}

type Metadata struct {
	TotalEntries   int        `json:"totalEntries"`
	UniqueUsers    int        `json:"uniqueUsers"`
	DateRange      *DateRange `json:"dateRange"`
	Months         []string   `json:"months"`
	LoadedMonths   []string   `json:"loadedMonths"`
	AvailableCount int        `json:"availableCount"`
	LoadedCount    int        `json:"loadedCount"`
	LoadedEntries  int        `json:"loadedEntries"`
	IndexLoaded    bool       `json:"indexLoaded"`
	EarliestMonth  string     `json:"earliestMonth,omitempty"`
	LatestMonth    string     `json:"latestMonth,omitempty"`
}

func (loader *Loader) Metadata() Metadata {
	loaded := loader.cache.Keys()
	metadata := Metadata{
		Months:        []string{},
		LoadedMonths:  loaded,
		LoadedCount:   len(loaded),
		LoadedEntries: loader.cache.Len(),
	}

	loader.mu.RLock()
	defer loader.mu.RUnlock()
	if loader.index == nil {
		return metadata
	}
	metadata.IndexLoaded = true
	metadata.TotalEntries = loader.index.TotalEntries
	metadata.UniqueUsers = loader.index.UniqueUsers
	metadata.DateRange = loader.index.DateRange
	metadata.Months = append(metadata.Months, loader.index.Months...)
	metadata.AvailableCount = len(loader.index.Months)
	if count := len(loader.index.Months); count > 0 {
		metadata.EarliestMonth = loader.index.Months[0]
		metadata.LatestMonth = loader.index.Months[count-1]
	}
	return metadata
}

// shared runs fn once per key across concurrent callers. fn gets a context
// detached from any single caller, so a cancelled request does not abort a
// fetch other requests are waiting on.
func (loader *Loader) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	result := loader.flights.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loader.fetchTimeout)
		defer cancel()
		return fn(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case outcome := <-result:
		if outcome.Err != nil {
			return nil, fmt.Errorf("%s: %w", key, outcome.Err)
		}
		return outcome.Val, nil
	}
}
