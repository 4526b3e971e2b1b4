package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/kira/internal/insights"
)

const calendarGridDays = 42

var ErrInvalidCalendarMonth = errors.New("invalid calendar month")

type CalendarDay struct {
	Date     string `json:"date"`
	Day      int    `json:"day"`
	InMonth  bool   `json:"inMonth"`
	IsToday  bool   `json:"isToday"`
	IsPeriod bool   `json:"isPeriod"`
	HasData  bool   `json:"hasData"`
	Flow     string `json:"flow,omitempty"`
}

// ParseCalendarMonth parses "YYYY-MM"; an empty value selects the month of now.
func ParseCalendarMonth(raw string, now time.Time) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, ErrInvalidCalendarMonth
	}
	return parsed, nil
}

// CalendarGridStart is the Sunday on or before the first of the month.
func CalendarGridStart(month time.Time) time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 0, -int(first.Weekday()))
}

// CalendarGridRange returns the half-open ISO date range the grid covers.
func CalendarGridRange(month time.Time) (string, string) {
	start := CalendarGridStart(month)
	return insights.FormatDate(start), insights.FormatDate(start.AddDate(0, 0, calendarGridDays))
}

// BuildCalendarDays lays out six full weeks around month. When several
// entries share a date the last one wins.
func BuildCalendarDays(month time.Time, entries []insights.Entry, todayKey string) []CalendarDay {
	byDate := make(map[string]insights.Entry, len(entries))
	for _, entry := range entries {
		byDate[entry.Date] = entry
	}

	start := CalendarGridStart(month)
	days := make([]CalendarDay, 0, calendarGridDays)
	for offset := 0; offset < calendarGridDays; offset++ {
		day := start.AddDate(0, 0, offset)
		key := insights.FormatDate(day)
		cell := CalendarDay{
			Date:    key,
			Day:     day.Day(),
			InMonth: day.Month() == month.Month() && day.Year() == month.Year(),
			IsToday: key == todayKey,
		}
		if entry, ok := byDate[key]; ok {
			cell.IsPeriod = entry.IsPeriod()
			cell.HasData = entry.HasTrackedData()
			cell.Flow = entry.Flow
		}
		days = append(days, cell)
	}
	return days
}
