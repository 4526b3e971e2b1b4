package demo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Partitions is the on-disk layout served by a Feed.
type Partitions struct {
	Index  Index
	Months map[string][]Entry
}

// BuildPartitions splits a full sample set into monthly partitions holding a
// single user each: the user with the most entries that month, ties going to
// the lexicographically smallest id. Index totals describe the full input.
func BuildPartitions(entries []Entry) Partitions {
	byMonth := make(map[string][]Entry)
	users := make(map[string]struct{})
	var dateRange *DateRange

	for _, entry := range entries {
		users[entry.UserID] = struct{}{}
		month, err := ParseMonthKey(firstMonthChars(entry.Date))
		if err != nil {
			continue
		}
		key := MonthKey(month)
		byMonth[key] = append(byMonth[key], entry)

		if dateRange == nil {
			dateRange = &DateRange{Min: entry.Date, Max: entry.Date}
			continue
		}
		if entry.Date < dateRange.Min {
			dateRange.Min = entry.Date
		}
		if entry.Date > dateRange.Max {
			dateRange.Max = entry.Date
		}
	}

	partitions := Partitions{
		Index: Index{
			TotalEntries: len(entries),
			UniqueUsers:  len(users),
			DateRange:    dateRange,
			Months:       make([]string, 0, len(byMonth)),
		},
		Months: make(map[string][]Entry, len(byMonth)),
	}

	for key, monthEntries := range byMonth {
		partitions.Index.Months = append(partitions.Index.Months, key)
		partitions.Months[key] = representativeEntries(monthEntries)
	}
	sort.Strings(partitions.Index.Months)
	return partitions
}

func representativeEntries(entries []Entry) []Entry {
	counts := make(map[string]int)
	for _, entry := range entries {
		counts[entry.UserID]++
	}

	selected := ""
	best := -1
	for userID, count := range counts {
		if count > best || (count == best && userID < selected) {
			selected = userID
			best = count
		}
	}

	result := make([]Entry, 0, best)
	for _, entry := range entries {
		if entry.UserID == selected {
			result = append(result, entry)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

func firstMonthChars(date string) string {
	if len(date) < len(MonthKeyLayout) {
		return date
	}
	return date[:len(MonthKeyLayout)]
}

// ReadEntries loads a full sample set from a JSON array file.
func ReadEntries(path string) ([]Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read demo input: %w", err)
	}
	entries := make([]Entry, 0)
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("decode demo input: %w", err)
	}
	return entries, nil
}

// WritePartitions writes index.json and one <YYYY-MM>.json per month to dir.
func WritePartitions(dir string, partitions Partitions) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create demo dir: %w", err)
	}
	if err := writeJSONFile(filepath.Join(dir, indexFileName), partitions.Index); err != nil {
		return err
	}
	for _, key := range partitions.Index.Months {
		if err := writeJSONFile(filepath.Join(dir, key+".json"), partitions.Months[key]); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONFile(path string, value any) error {
	content, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
