package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/kira/internal/insights"
	"github.com/terraincognita07/kira/internal/models"
)

var (
	ErrDailyRecordLoadFailed   = errors.New("load daily record failed")
	ErrDailyRecordSaveFailed   = errors.New("save daily record failed")
	ErrDailyRecordDeleteFailed = errors.New("delete daily record failed")
)

type DailyRecordRepository interface {
	ListByUser(userID uint) ([]models.DailyRecord, error)
	ListByUserRange(userID uint, fromDate string, toDate string) ([]models.DailyRecord, error)
	FindByUserAndDate(userID uint, date string) (models.DailyRecord, bool, error)
	Upsert(record *models.DailyRecord) error
	DeleteByUserAndDate(userID uint, date string) error
}

type DayService struct {
	records DailyRecordRepository
}

func NewDayService(records DailyRecordRepository) *DayService {
	return &DayService{records: records}
}

// ListDailyRecords returns every record of the user in ascending date order.
func (service *DayService) ListDailyRecords(userID uint) ([]models.DailyRecord, error) {
	records, err := service.records.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDailyRecordLoadFailed, err)
	}
	return records, nil
}

// ListDailyRecordsBetween returns records with fromDate <= date < toDate.
// Either bound may be empty.
func (service *DayService) ListDailyRecordsBetween(userID uint, fromDate string, toDate string) ([]models.DailyRecord, error) {
	records, err := service.records.ListByUserRange(userID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDailyRecordLoadFailed, err)
	}
	return records, nil
}

func (service *DayService) ListDailyRecordsInWindow(userID uint, window insights.Window) ([]models.DailyRecord, error) {
	return service.ListDailyRecordsBetween(userID, window.StartKey(), window.EndKey())
}

// GetDailyRecord returns nil without error when nothing was recorded that day.
func (service *DayService) GetDailyRecord(userID uint, date string) (*models.DailyRecord, error) {
	record, found, err := service.records.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDailyRecordLoadFailed, err)
	}
	if !found {
		return nil, nil
	}
	return &record, nil
}

// UpsertDailyRecord overwrites every field of the (user, date) record,
// creating it when absent. Concurrent writes to the same day resolve to the
// last one. IsPeriod is always derived from the flow.
func (service *DayService) UpsertDailyRecord(userID uint, date string, input DailyRecordInput) (models.DailyRecord, error) {
	record := models.DailyRecord{
		UserID:   userID,
		Date:     date,
		Flow:     input.Flow,
		Mood:     input.Mood,
		Energy:   input.Energy,
		Symptoms: append([]string{}, input.Symptoms...),
		Notes:    input.Notes,
		IsPeriod: models.FlowIsPeriod(input.Flow),
	}
	if input.Sleep != nil {
		sleep := *input.Sleep
		record.Sleep = &sleep
	}

	if err := service.records.Upsert(&record); err != nil {
		return models.DailyRecord{}, fmt.Errorf("%w: %w", ErrDailyRecordSaveFailed, err)
	}

	stored, found, err := service.records.FindByUserAndDate(userID, date)
	if err != nil {
		return models.DailyRecord{}, fmt.Errorf("%w: %w", ErrDailyRecordLoadFailed, err)
	}
	if !found {
		return record, nil
	}
	return stored, nil
}

// DeleteDailyRecord succeeds when the record does not exist.
func (service *DayService) DeleteDailyRecord(userID uint, date string) error {
	if err := service.records.DeleteByUserAndDate(userID, date); err != nil {
		return fmt.Errorf("%w: %w", ErrDailyRecordDeleteFailed, err)
	}
	return nil
}
