package insights

import (
	"errors"
	"strings"
	"time"
)

type Range string

const (
	Range30Days  Range = "30days"
	Range3Months Range = "3months"
	Range6Months Range = "6months"
	Range1Year   Range = "1year"
)

const DefaultRange = Range30Days

var ErrInvalidRange = errors.New("invalid time range")

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseRange accepts a range token; an empty value selects DefaultRange.
func ParseRange(raw string) (Range, error) {
	value := Range(strings.ToLower(strings.TrimSpace(raw)))
	switch value {
	case "":
		return DefaultRange, nil
	case Range30Days, Range3Months, Range6Months, Range1Year:
		return value, nil
	default:
		return "", ErrInvalidRange
	}
}

// Granularity is fixed per range: dense daily series stop being readable
// past a few months.
func (r Range) Granularity() Granularity {
	switch r {
	case Range6Months:
		return GranularityWeekly
	case Range1Year:
		return GranularityMonthly
	default:
		return GranularityDaily
	}
}

func (r Range) Timeframe() string {
	switch r {
	case Range3Months:
		return "3 months"
	case Range6Months:
		return "6 months"
	case Range1Year:
		return "year"
	default:
		return "30 days"
	}
}

// advance adds the range span using calendar arithmetic; AddDate normalises
// overflowing days the same way native calendar addition does (Jan 31 + 1
// month lands in early March).
func (r Range) advance(value time.Time, sign int) time.Time {
	switch r {
	case Range3Months:
		return value.AddDate(0, 3*sign, 0)
	case Range6Months:
		return value.AddDate(0, 6*sign, 0)
	case Range1Year:
		return value.AddDate(sign, 0, 0)
	default:
		return value.AddDate(0, 0, 30*sign)
	}
}

// Window is a half-open calendar-day interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFrom starts at the anchor day and extends forward by the range span.
func WindowFrom(r Range, anchor time.Time) Window {
	start := dayOf(anchor)
	return Window{Start: start, End: r.advance(start, 1)}
}

// TrailingWindow covers the range span ending with (and including) today.
func TrailingWindow(r Range, now time.Time) Window {
	today := dayOf(now)
	return Window{Start: r.advance(today, -1), End: today.AddDate(0, 0, 1)}
}

func (window Window) StartKey() string {
	return FormatDate(window.Start)
}

func (window Window) EndKey() string {
	return FormatDate(window.End)
}

// Contains reports whether an ISO date lies in [Start, End). Dates that do
// not parse, including unpadded ones, fall outside.
func (window Window) Contains(date string) bool {
	day, err := ParseDate(date)
	if err != nil {
		return false
	}
	return !day.Before(dayOf(window.Start)) && day.Before(dayOf(window.End))
}

// Months lists the "YYYY-MM" keys of every month the window touches.
func (window Window) Months() []string {
	if !window.End.After(window.Start) {
		return []string{}
	}
	last := window.End.AddDate(0, 0, -1)
	cursor := time.Date(window.Start.Year(), window.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	stop := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := make([]string, 0, 13)
	for !cursor.After(stop) {
		months = append(months, cursor.Format("2006-01"))
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

// Filter keeps the entries whose date lies inside the window.
func Filter(entries []Entry, window Window) []Entry {
	filtered := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if window.Contains(entry.Date) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

func dayOf(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
