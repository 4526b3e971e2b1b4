package insights

const defaultSymptomChartLimit = 6

type Overview struct {
	PeriodDays      int     `json:"periodDays"`
	AverageSleep    float64 `json:"averageSleep"`
	GoodMoodPercent int     `json:"goodMoodPercent"`
	TotalDays       int     `json:"totalDays"`
}

// BuildOverview summarises a series for the quick-overview tiles.
func BuildOverview(series []Entry) Overview {
	overview := Overview{TotalDays: len(series)}

	sleepTotal := 0.0
	sleepCount := 0
	moodDays := 0
	goodDays := 0
	for _, entry := range series {
		if entry.IsPeriod() {
			overview.PeriodDays++
		}
		if entry.Sleep != nil {
			sleepTotal += *entry.Sleep
			sleepCount++
		}
		if entry.Mood != "" {
			moodDays++
			if entry.Mood == "great" || entry.Mood == "good" {
				goodDays++
			}
		}
	}

	if sleepCount > 0 {
		overview.AverageSleep = RoundTenth(sleepTotal / float64(sleepCount))
	}
	overview.GoodMoodPercent = Percent(goodDays, moodDays)
	return overview
}

type SymptomFrequency struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// SymptomFrequencies ranks tags by occurrence. Percent is relative to the
// number of entries in the series, not to the number of tags.
func SymptomFrequencies(series []Entry, limit int) []SymptomFrequency {
	if limit <= 0 {
		limit = defaultSymptomChartLimit
	}

	counts := newTally()
	for _, entry := range series {
		for _, symptom := range entry.Symptoms {
			counts.add(symptom)
		}
	}

	ranked := counts.ranked()
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]SymptomFrequency, 0, len(ranked))
	for _, item := range ranked {
		result = append(result, SymptomFrequency{
			Name:    item.Value,
			Label:   SymptomLabel(item.Value),
			Count:   item.Count,
			Percent: Percent(item.Count, len(series)),
		})
	}
	return result
}
