package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const topBucketSymptoms = 3

// Aggregate groups entries by granularity. Daily granularity only sorts;
// weekly and monthly granularity merge each bucket into one summary entry.
func Aggregate(entries []Entry, granularity Granularity) []Entry {
	sorted := sortByDate(entries)
	switch granularity {
	case GranularityWeekly:
		return aggregateBuckets(sorted, weekBucket, "Weekly average (%d days)")
	case GranularityMonthly:
		return aggregateBuckets(sorted, monthBucket, "Monthly average (%d days)")
	default:
		return sorted
	}
}

// AggregateForRange applies the granularity fixed for the range token.
func AggregateForRange(entries []Entry, r Range) []Entry {
	return Aggregate(entries, r.Granularity())
}

type bucketFunc func(day time.Time) (key string, representative time.Time)

// weekBucket keys on the Sunday starting the week and shows the Wednesday.
func weekBucket(day time.Time) (string, time.Time) {
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))
	return FormatDate(weekStart), weekStart.AddDate(0, 0, 3)
}

func monthBucket(day time.Time) (string, time.Time) {
	return day.Format("2006-01"), time.Date(day.Year(), day.Month(), 15, 0, 0, 0, 0, time.UTC)
}

type bucket struct {
	representative time.Time
	members        []Entry
}

func aggregateBuckets(sorted []Entry, keyOf bucketFunc, notesFormat string) []Entry {
	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	for _, entry := range sorted {
		day, err := ParseDate(entry.Date)
		if err != nil {
			continue
		}
		key, representative := keyOf(day)
		current, exists := buckets[key]
		if !exists {
			current = &bucket{representative: representative}
			buckets[key] = current
			order = append(order, key)
		}
		current.members = append(current.members, entry)
	}

	result := make([]Entry, 0, len(order))
	for _, key := range order {
		current := buckets[key]
		result = append(result, summarizeBucket(current, notesFormat))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

func summarizeBucket(current *bucket, notesFormat string) Entry {
	moods := newTally()
	energies := newTally()
	flows := newTally()
	symptoms := newTally()
	sleepTotal := 0.0
	sleepCount := 0

	for _, member := range current.members {
		moods.add(member.Mood)
		energies.add(member.Energy)
		if member.IsPeriod() {
			flows.add(member.Flow)
		}
		for _, symptom := range member.Symptoms {
			symptoms.add(symptom)
		}
		if member.Sleep != nil {
			sleepTotal += *member.Sleep
			sleepCount++
		}
	}

	summary := Entry{
		Date:     FormatDate(current.representative),
		Flow:     flows.mode(),
		Mood:     moods.mode(),
		Energy:   energies.mode(),
		Symptoms: symptoms.top(topBucketSymptoms),
		Notes:    fmt.Sprintf(notesFormat, len(current.members)),
		Days:     len(current.members),
	}
	if sleepCount > 0 {
		mean := RoundTenth(sleepTotal / float64(sleepCount))
		summary.Sleep = &mean
	}
	return summary
}

// RoundTenth rounds half away from zero to one decimal place.
func RoundTenth(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(1).Float64()
	return rounded
}

func sortByDate(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}
