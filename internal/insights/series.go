package insights

type TrendPoint struct {
	Date        string `json:"date"`
	Mood        *int   `json:"mood"`
	MoodLabel   string `json:"moodLabel,omitempty"`
	Energy      *int   `json:"energy"`
	EnergyLabel string `json:"energyLabel,omitempty"`
	Flow        *int   `json:"flow"`
	FlowLabel   string `json:"flowLabel,omitempty"`
}

type SleepPoint struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// TrendPoints maps categorical fields to chart scores. Entries without mood,
// energy or flow are left out; missing fields stay nil so lines break.
func TrendPoints(series []Entry) []TrendPoint {
	points := make([]TrendPoint, 0, len(series))
	for _, entry := range series {
		if entry.Mood == "" && entry.Energy == "" && entry.Flow == "" {
			continue
		}

		point := TrendPoint{Date: entry.Date}
		if entry.Mood != "" {
			score := MoodScore(entry.Mood)
			point.Mood = &score
			point.MoodLabel = ScoreLabel(float64(score))
		}
		if entry.Energy != "" {
			score := EnergyScore(entry.Energy)
			point.Energy = &score
			point.EnergyLabel = ScoreLabel(float64(score))
		}
		if entry.Flow != "" {
			score := FlowScore(entry.Flow)
			point.Flow = &score
			point.FlowLabel = FlowLabel(score)
		}
		points = append(points, point)
	}
	return points
}

func SleepPoints(series []Entry) []SleepPoint {
	points := make([]SleepPoint, 0, len(series))
	for _, entry := range series {
		if entry.Sleep == nil {
			continue
		}
		points = append(points, SleepPoint{Date: entry.Date, Hours: *entry.Sleep})
	}
	return points
}
