// Package demo serves pre-generated sample data to visitors without an
// account. Data is partitioned by month and loaded lazily from a Feed.
package demo

import (
	"github.com/terraincognita07/kira/internal/insights"
)

// Entry is a daily record from the anonymised sample set.
type Entry struct {
	UserID     string   `json:"userId"`
	Date       string   `json:"date"`
	Flow       string   `json:"flow,omitempty"`
	Mood       string   `json:"mood,omitempty"`
	Energy     string   `json:"energy,omitempty"`
	Sleep      *float64 `json:"sleep,omitempty"`
	Symptoms   []string `json:"symptoms,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	IsPeriod   bool     `json:"isPeriod"`
	DayOfCycle int      `json:"dayOfCycle"`
}

func (entry Entry) InsightEntry() insights.Entry {
	converted := insights.Entry{
		Date:     entry.Date,
		Flow:     entry.Flow,
		Mood:     entry.Mood,
		Energy:   entry.Energy,
		Symptoms: append([]string{}, entry.Symptoms...),
		Notes:    entry.Notes,
	}
	if entry.Sleep != nil {
		sleep := *entry.Sleep
		converted.Sleep = &sleep
	}
	return converted
}

type DateRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// Index describes the full sample set and the partitions available.
type Index struct {
	TotalEntries int        `json:"totalEntries"`
	UniqueUsers  int        `json:"uniqueUsers"`
	DateRange    *DateRange `json:"dateRange"`
	Months       []string   `json:"months"`
}

func (index Index) HasMonth(key string) bool {
	for _, month := range index.Months {
		if month == key {
			return true
		}
	}
	return false
}
