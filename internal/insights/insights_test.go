package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesEveryObservation(t *testing.T) {
	series := []Entry{
		{Date: "2026-03-01", Flow: "heavy", Mood: "great", Sleep: sleep(6), Symptoms: []string{"CRAMPS"}},
		{Date: "2026-03-02", Flow: "light", Mood: "low", Sleep: sleep(6.5), Symptoms: []string{"CRAMPS", "BREAST_TENDERNESS"}},
		{Date: "2026-03-03", Flow: "none", Mood: "great"},
		{Date: "2026-03-04"},
	}

	observations := Generate(series, Range30Days)

	assert.Equal(t, []string{
		"You average 6.3 hours of sleep per night",
		"Consider aiming for 7-9 hours of sleep for better health",
		"You had 2 period days in the last 30 days",
		"67% of your tracked days had a great mood",
		"Your most common symptom is cramps (2 times)",
	}, observations)
}

func TestGenerateSkipsRecommendationForEnoughSleep(t *testing.T) {
	observations := Generate([]Entry{
		{Date: "2026-03-01", Sleep: sleep(7)},
		{Date: "2026-03-02", Sleep: sleep(8)},
	}, Range3Months)

	assert.Equal(t, []string{"You average 7.5 hours of sleep per night"}, observations)
}

func TestGenerateCountsZeroSleepAsRecorded(t *testing.T) {
	observations := Generate([]Entry{{Date: "2026-03-01", Sleep: sleep(0)}}, Range30Days)

	require.Len(t, observations, 2)
	assert.Equal(t, "You average 0.0 hours of sleep per night", observations[0])
}

func TestGenerateEmptyWhenNothingTracked(t *testing.T) {
	assert.Empty(t, Generate(nil, Range30Days))
	assert.Empty(t, Generate([]Entry{{Date: "2026-03-01", Flow: "none", Notes: "just a note"}}, Range1Year))
}

func TestGenerateUsesRangeTimeframe(t *testing.T) {
	series := []Entry{{Date: "2026-03-01", Flow: "medium"}}

	assert.Equal(t, []string{"You had 1 period days in the last year"}, Generate(series, Range1Year))
	assert.Equal(t, []string{"You had 1 period days in the last 6 months"}, Generate(series, Range6Months))
}

func TestGenerateOnYearOfMonthlyBuckets(t *testing.T) {
	entries := make([]Entry, 0, 40)
	start := day(t, "2025-03-01")
	for index := 0; index < 40; index++ {
		entries = append(entries, Entry{
			Date:  FormatDate(start.AddDate(0, 0, index*9)),
			Sleep: sleep(6.5),
		})
	}

	window := WindowFrom(Range1Year, start)
	report := BuildReport(entries, Range1Year, window)

	assert.Equal(t, GranularityMonthly, report.Granularity)
	assert.Equal(t, []string{
		"You average 6.5 hours of sleep per night",
		"Consider aiming for 7-9 hours of sleep for better health",
	}, report.Insights)
	assert.False(t, report.Empty)
}

func TestSymptomLabel(t *testing.T) {
	assert.Equal(t, "breast tenderness", SymptomLabel("BREAST_TENDERNESS"))
	assert.Equal(t, "acne", SymptomLabel("acne"))
}

func TestPercentRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 13, Percent(1, 8))
	assert.Equal(t, 100, Percent(4, 4))
}
