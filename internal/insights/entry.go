// Package insights turns daily health entries into chart series, summary
// buckets and short text observations for a selected time range.
package insights

import (
	"time"

	"github.com/terraincognita07/kira/internal/models"
)

const DateLayout = "2006-01-02"

// Entry is a daily-record-shaped data point. For weekly and monthly buckets
// Date is the representative date and Days is the number of merged records.
type Entry struct {
	Date     string   `json:"date"`
	Flow     string   `json:"flow,omitempty"`
	Mood     string   `json:"mood,omitempty"`
	Energy   string   `json:"energy,omitempty"`
	Sleep    *float64 `json:"sleep,omitempty"`
	Symptoms []string `json:"symptoms"`
	Notes    string   `json:"notes,omitempty"`
	Days     int      `json:"days,omitempty"`
}

func (entry Entry) IsPeriod() bool {
	return models.FlowIsPeriod(entry.Flow)
}

// HasTrackedData reports whether anything beyond flow was recorded.
func (entry Entry) HasTrackedData() bool {
	return entry.Mood != "" ||
		entry.Energy != "" ||
		entry.Sleep != nil ||
		len(entry.Symptoms) > 0 ||
		entry.Notes != ""
}

func FromDailyRecord(record models.DailyRecord) Entry {
	entry := Entry{
		Date:     record.Date,
		Flow:     record.Flow,
		Mood:     record.Mood,
		Energy:   record.Energy,
		Symptoms: append([]string{}, record.Symptoms...),
		Notes:    record.Notes,
	}
	if record.Sleep != nil {
		sleep := *record.Sleep
		entry.Sleep = &sleep
	}
	return entry
}

func FromDailyRecords(records []models.DailyRecord) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entries = append(entries, FromDailyRecord(record))
	}
	return entries
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

func FormatDate(value time.Time) string {
	return value.Format(DateLayout)
}
