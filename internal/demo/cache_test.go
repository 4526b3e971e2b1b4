package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/kira/internal/insights"
)

func TestParseMonthKey(t *testing.T) {
	parsed, err := ParseMonthKey("2026-02")
	require.NoError(t, err)
	assert.Equal(t, time.February, parsed.Month())
	assert.Equal(t, "2026-02", MonthKey(parsed))

	for _, raw := range []string{"", "2026-2", "2026-13", "26-01", "2026-01-01"} {
		_, err := ParseMonthKey(raw)
		assert.ErrorIs(t, err, ErrInvalidMonthKey, raw)
	}
}

func TestPartitionCacheMergesOnce(t *testing.T) {
	cache := NewPartitionCache()
	entries := []Entry{{UserID: "a", Date: "2026-01-02"}}

	assert.True(t, cache.Merge("2026-01", entries))
	assert.False(t, cache.Merge("2026-01", entries))
	assert.Equal(t, 1, cache.Len())
	assert.True(t, cache.Has("2026-01"))
	assert.False(t, cache.Has("2026-02"))
}

func TestPartitionCacheEntriesSortedAndFiltered(t *testing.T) {
	cache := NewPartitionCache()
	hours := 8.0
	cache.Merge("2026-02", []Entry{{UserID: "a", Date: "2026-02-03", Sleep: &hours}})
	cache.Merge("2026-01", []Entry{
		{UserID: "b", Date: "2026-01-20"},
		{UserID: "b", Date: "2025-12-31"},
	})

	anchor, err := insights.ParseDate("2026-01-01")
	require.NoError(t, err)
	entries := cache.Entries(insights.WindowFrom(insights.Range3Months, anchor))

	require.Len(t, entries, 2)
	assert.Equal(t, "2026-01-20", entries[0].Date)
	assert.Equal(t, "2026-02-03", entries[1].Date)
	assert.Equal(t, []string{"2026-01", "2026-02"}, cache.Keys())

	entry, ok := cache.EntryForDate("2026-02-03")
	require.True(t, ok)
	assert.Equal(t, "a", entry.UserID)
	_, ok = cache.EntryForDate("2026-02-04")
	assert.False(t, ok)
}
