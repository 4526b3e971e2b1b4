package demo

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/kira/internal/insights"
)

const MonthKeyLayout = "2006-01"

var ErrInvalidMonthKey = errors.New("invalid month key")

// ParseMonthKey validates a "YYYY-MM" partition key.
func ParseMonthKey(raw string) (time.Time, error) {
	parsed, err := time.Parse(MonthKeyLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidMonthKey
	}
	return parsed, nil
}

func MonthKey(value time.Time) string {
	return value.Format(MonthKeyLayout)
}

// PartitionCache is the merged working set of loaded month partitions.
// A partition is merged at most once.
type PartitionCache struct {
	mu      sync.RWMutex
	loaded  map[string]int
	entries []Entry
}

func NewPartitionCache() *PartitionCache {
	return &PartitionCache{loaded: make(map[string]int)}
}

func (cache *PartitionCache) Has(key string) bool {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	_, ok := cache.loaded[key]
	return ok
}

// Keys lists the merged partitions in ascending order.
func (cache *PartitionCache) Keys() []string {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	keys := make([]string, 0, len(cache.loaded))
	for key := range cache.loaded {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (cache *PartitionCache) Len() int {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return len(cache.entries)
}

// Merge adds a partition to the working set and reports whether it was new.
func (cache *PartitionCache) Merge(key string, entries []Entry) bool {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if _, ok := cache.loaded[key]; ok {
		return false
	}
	cache.loaded[key] = len(entries)
	cache.entries = append(cache.entries, entries...)
	return true
}

// Entries returns the merged entries inside window, sorted by date.
func (cache *PartitionCache) Entries(window insights.Window) []insights.Entry {
	cache.mu.RLock()
	defer cache.mu.RUnlock()

	result := make([]insights.Entry, 0)
	for _, entry := range cache.entries {
		if window.Contains(entry.Date) {
			result = append(result, entry.InsightEntry())
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// EntryForDate returns the first merged entry recorded on date.
func (cache *PartitionCache) EntryForDate(date string) (Entry, bool) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	for _, entry := range cache.entries {
		if entry.Date == date {
			return entry, true
		}
	}
	return Entry{}, false
}
