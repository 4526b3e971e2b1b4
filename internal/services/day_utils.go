package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/kira/internal/insights"
)

var ErrInvalidDayDate = errors.New("invalid day date")

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// TodayKey is the ISO date of the current calendar day in location.
func TodayKey(now time.Time, location *time.Location) string {
	return insights.FormatDate(DateAtLocation(now, location))
}

// ParseDayDate validates an ISO calendar date and returns it in canonical form.
func ParseDayDate(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	parsed, err := insights.ParseDate(value)
	if err != nil {
		return "", ErrInvalidDayDate
	}
	return insights.FormatDate(parsed), nil
}

// NextDayKey returns the ISO date following date, used to turn an inclusive
// upper bound into an exclusive one.
func NextDayKey(date string) (string, error) {
	parsed, err := insights.ParseDate(date)
	if err != nil {
		return "", ErrInvalidDayDate
	}
	return insights.FormatDate(parsed.AddDate(0, 0, 1)), nil
}

// NormalizeTags trims tags and drops blanks and duplicates, keeping the first
// occurrence order.
func NormalizeTags(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	tags := make([]string, 0, len(values))
	for _, value := range values {
		tag := strings.TrimSpace(value)
		if tag == "" {
			continue
		}
		if _, exists := seen[tag]; exists {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
