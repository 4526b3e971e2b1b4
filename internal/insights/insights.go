package insights

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const recommendedSleepHours = 7

// Generate derives short observations from a series. Each rule fires on its
// own; an empty result means the caller should show an empty state.
func Generate(series []Entry, r Range) []string {
	observations := make([]string, 0, 5)

	sleepTotal := 0.0
	sleepCount := 0
	periodDays := 0
	moodDays := 0
	greatDays := 0
	symptoms := newTally()

	for _, entry := range series {
		if entry.Sleep != nil {
			sleepTotal += *entry.Sleep
			sleepCount++
		}
		if entry.IsPeriod() {
			periodDays++
		}
		if entry.Mood != "" {
			moodDays++
			if entry.Mood == "great" {
				greatDays++
			}
		}
		for _, symptom := range entry.Symptoms {
			symptoms.add(symptom)
		}
	}

	if sleepCount > 0 {
		average := sleepTotal / float64(sleepCount)
		observations = append(observations, fmt.Sprintf("You average %s hours of sleep per night", formatTenth(average)))
		if average < recommendedSleepHours {
			observations = append(observations, "Consider aiming for 7-9 hours of sleep for better health")
		}
	}

	if periodDays > 0 {
		observations = append(observations, fmt.Sprintf("You had %d period days in the last %s", periodDays, r.Timeframe()))
	}

	if moodDays > 0 {
		observations = append(observations, fmt.Sprintf("%d%% of your tracked days had a great mood", Percent(greatDays, moodDays)))
	}

	if symptoms.len() > 0 {
		top := symptoms.ranked()[0]
		observations = append(observations, fmt.Sprintf("Your most common symptom is %s (%d times)", SymptomLabel(top.Value), top.Count))
	}

	return observations
}

// SymptomLabel turns a stored tag such as "BREAST_TENDERNESS" into display text.
func SymptomLabel(tag string) string {
	return strings.ReplaceAll(strings.ToLower(tag), "_", " ")
}

// Percent returns part/total as a whole percentage rounded half up.
func Percent(part int, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(total) + 0.5))
}

func formatTenth(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(1)
}
