package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/terraincognita07/kira/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Period",
	"Flow",
	"Mood",
	"Energy",
	"Sleep",
	"Symptoms",
	"Notes",
}

type ExportDayReader interface {
	ListByUserRange(userID uint, fromDate string, toDate string) ([]models.DailyRecord, error)
}

type ExportService struct {
	days ExportDayReader
}

type ExportSummary struct {
	TotalEntries int    `json:"totalEntries"`
	HasData      bool   `json:"hasData"`
	DateFrom     string `json:"dateFrom,omitempty"`
	DateTo       string `json:"dateTo,omitempty"`
}

type ExportJSONEntry struct {
	Date     string   `json:"date"`
	Period   bool     `json:"period"`
	Flow     string   `json:"flow"`
	Mood     string   `json:"mood,omitempty"`
	Energy   string   `json:"energy,omitempty"`
	Sleep    *float64 `json:"sleep,omitempty"`
	Symptoms []string `json:"symptoms"`
	Notes    string   `json:"notes"`
}

func NewExportService(days ExportDayReader) *ExportService {
	return &ExportService{days: days}
}

func (service *ExportService) load(userID uint, exportRange ExportRange) ([]models.DailyRecord, error) {
	records, err := service.days.ListByUserRange(userID, exportRange.From, exportRange.exclusiveTo())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDailyRecordLoadFailed, err)
	}
	return records, nil
}

// BuildSummary relies on records arriving in ascending date order.
func (service *ExportService) BuildSummary(userID uint, exportRange ExportRange) (ExportSummary, error) {
	records, err := service.load(userID, exportRange)
	if err != nil {
		return ExportSummary{}, err
	}
	if len(records) == 0 {
		return ExportSummary{}, nil
	}
	return ExportSummary{
		TotalEntries: len(records),
		HasData:      true,
		DateFrom:     records[0].Date,
		DateTo:       records[len(records)-1].Date,
	}, nil
}

func (service *ExportService) BuildJSONEntries(userID uint, exportRange ExportRange) ([]ExportJSONEntry, error) {
	records, err := service.load(userID, exportRange)
	if err != nil {
		return nil, err
	}

	entries := make([]ExportJSONEntry, 0, len(records))
	for _, record := range records {
		entry := ExportJSONEntry{
			Date:     record.Date,
			Period:   record.IsPeriod,
			Flow:     normalizeExportFlow(record.Flow),
			Mood:     record.Mood,
			Energy:   record.Energy,
			Symptoms: append([]string{}, record.Symptoms...),
			Notes:    record.Notes,
		}
		if record.Sleep != nil {
			sleep := *record.Sleep
			entry.Sleep = &sleep
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// BuildCSVRows returns one row per record in ExportCSVHeaders order.
func (service *ExportService) BuildCSVRows(userID uint, exportRange ExportRange) ([][]string, error) {
	records, err := service.load(userID, exportRange)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		sleep := ""
		if record.Sleep != nil {
			sleep = strconv.FormatFloat(*record.Sleep, 'f', -1, 64)
		}
		rows = append(rows, []string{
			record.Date,
			csvYesNo(record.IsPeriod),
			csvFlowLabel(record.Flow),
			csvLabel(record.Mood),
			csvLabel(record.Energy),
			sleep,
			strings.Join(record.Symptoms, "; "),
			record.Notes,
		})
	}
	return rows, nil
}

func csvYesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func csvLabel(value string) string {
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

func csvFlowLabel(flow string) string {
	switch normalizeExportFlow(flow) {
	case models.FlowLight:
		return "Light"
	case models.FlowMedium:
		return "Medium"
	case models.FlowHeavy:
		return "Heavy"
	default:
		return "None"
	}
}

func normalizeExportFlow(flow string) string {
	switch strings.ToLower(strings.TrimSpace(flow)) {
	case models.FlowLight, models.FlowMedium, models.FlowHeavy:
		return strings.ToLower(strings.TrimSpace(flow))
	default:
		return models.FlowNone
	}
}
