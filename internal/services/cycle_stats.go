package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/kira/internal/insights"
	"github.com/terraincognita07/kira/internal/models"
)

const (
	DefaultCycleLength = 28
	lutealPhaseDays    = 14
	recentCycleCount   = 6
	// A period day after at least this many non-period days opens a new cycle.
	cycleGapDays = 5
)

const (
	PhaseUnknown    = "unknown"
	PhaseMenstrual  = "menstrual"
	PhaseFollicular = "follicular"
	PhaseFertile    = "fertile"
	PhaseOvulation  = "ovulation"
	PhaseLuteal     = "luteal"
)

// CycleStats summarises recent cycles and projects the next one. Dates are
// ISO strings and empty when unknown.
type CycleStats struct {
	CycleCount           int     `json:"cycleCount"`
	CurrentCycleDay      int     `json:"currentCycleDay"`
	CurrentPhase         string  `json:"currentPhase"`
	AverageCycleLength   float64 `json:"averageCycleLength"`
	MedianCycleLength    int     `json:"medianCycleLength"`
	AveragePeriodLength  float64 `json:"averagePeriodLength"`
	LastPeriodStart      string  `json:"lastPeriodStart,omitempty"`
	NextPeriodStart      string  `json:"nextPeriodStart,omitempty"`
	OvulationDate        string  `json:"ovulationDate,omitempty"`
	FertilityWindowStart string  `json:"fertilityWindowStart,omitempty"`
	FertilityWindowEnd   string  `json:"fertilityWindowEnd,omitempty"`
}

type detectedCycle struct {
	Start        time.Time
	PeriodLength int
}

// BuildCycleStats combines period days from daily records with explicitly
// logged cycle starts. today is the caller's calendar day.
func BuildCycleStats(records []models.DailyRecord, cycles []models.CycleRecord, today time.Time) CycleStats {
	stats := CycleStats{CurrentPhase: PhaseUnknown}

	periodByDate := make(map[string]bool, len(records))
	for _, record := range records {
		if record.IsPeriod || models.FlowIsPeriod(record.Flow) {
			periodByDate[record.Date] = true
		}
	}

	starts := DetectCycleStarts(records, cycles)
	if len(starts) == 0 {
		return stats
	}
	stats.CycleCount = len(starts)

	detected := buildCycles(starts, periodByDate)
	recentLengths := tailInts(cycleLengths(starts), recentCycleCount)
	if len(recentLengths) > 0 {
		stats.AverageCycleLength = insights.RoundTenth(averageInts(recentLengths))
		stats.MedianCycleLength = medianInt(recentLengths)
	}

	periodLengths := make([]int, 0, len(detected))
	for _, cycle := range tailCycles(detected, recentCycleCount) {
		if cycle.PeriodLength > 0 {
			periodLengths = append(periodLengths, cycle.PeriodLength)
		}
	}
	if len(periodLengths) > 0 {
		stats.AveragePeriodLength = insights.RoundTenth(averageInts(periodLengths))
	}

	lastStart := starts[len(starts)-1]
	predictionLength := stats.MedianCycleLength
	if predictionLength == 0 {
		predictionLength = DefaultCycleLength
	}
	nextStart := lastStart.AddDate(0, 0, predictionLength)
	ovulation := nextStart.AddDate(0, 0, -lutealPhaseDays)
	fertileStart := ovulation.AddDate(0, 0, -5)
	fertileEnd := ovulation.AddDate(0, 0, 1)

	stats.LastPeriodStart = insights.FormatDate(lastStart)
	stats.NextPeriodStart = insights.FormatDate(nextStart)
	stats.OvulationDate = insights.FormatDate(ovulation)
	stats.FertilityWindowStart = insights.FormatDate(fertileStart)
	stats.FertilityWindowEnd = insights.FormatDate(fertileEnd)

	day := dateOnly(today)
	if day.Before(lastStart) {
		return stats
	}
	stats.CurrentCycleDay = int(day.Sub(lastStart).Hours()/24) + 1

	switch {
	case periodByDate[insights.FormatDate(day)]:
		stats.CurrentPhase = PhaseMenstrual
	case day.Equal(ovulation):
		stats.CurrentPhase = PhaseOvulation
	case betweenInclusive(day, fertileStart, fertileEnd):
		stats.CurrentPhase = PhaseFertile
	case day.Before(ovulation):
		stats.CurrentPhase = PhaseFollicular
	default:
		stats.CurrentPhase = PhaseLuteal
	}
	return stats
}

// DetectCycleStarts returns ascending cycle start days. A logged cycle start
// within the gap of an earlier start is treated as the same cycle.
func DetectCycleStarts(records []models.DailyRecord, cycles []models.CycleRecord) []time.Time {
	candidates := make([]time.Time, 0, len(records)+len(cycles))
	for _, record := range records {
		if !record.IsPeriod && !models.FlowIsPeriod(record.Flow) {
			continue
		}
		if day, err := insights.ParseDate(record.Date); err == nil {
			candidates = append(candidates, day)
		}
	}
	for _, cycle := range cycles {
		if day, err := insights.ParseDate(cycle.StartDate); err == nil {
			candidates = append(candidates, day)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Before(candidates[j])
	})

	starts := make([]time.Time, 0)
	var previous time.Time
	for _, day := range candidates {
		if previous.IsZero() {
			starts = append(starts, day)
			previous = day
			continue
		}
		if day.Equal(previous) {
			continue
		}
		gapDays := int(day.Sub(previous).Hours()/24) - 1
		if gapDays >= cycleGapDays {
			starts = append(starts, day)
		}
		previous = day
	}
	return starts
}

func buildCycles(starts []time.Time, periodByDate map[string]bool) []detectedCycle {
	cycles := make([]detectedCycle, 0, len(starts))
	for _, start := range starts {
		periodLength := 0
		for day := start; !day.After(start.AddDate(0, 0, 10)); day = day.AddDate(0, 0, 1) {
			if !periodByDate[insights.FormatDate(day)] {
				break
			}
			periodLength++
		}
		cycles = append(cycles, detectedCycle{Start: start, PeriodLength: periodLength})
	}
	return cycles
}

func cycleLengths(starts []time.Time) []int {
	if len(starts) < 2 {
		return nil
	}
	lengths := make([]int, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		lengths = append(lengths, int(starts[i].Sub(starts[i-1]).Hours()/24))
	}
	return lengths
}

func tailInts(values []int, n int) []int {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func tailCycles(values []detectedCycle, n int) []detectedCycle {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

// medianInt rounds the middle pair half up for even counts.
func medianInt(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return int(float64(sorted[mid-1]+sorted[mid])/2 + 0.5)
}

func betweenInclusive(day, start, end time.Time) bool {
	return !day.Before(start) && !day.After(end)
}

func dateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
