package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/kira/internal/models"
)

var (
	ErrCycleLoadFailed = errors.New("load cycles failed")
	ErrCycleSaveFailed = errors.New("save cycle failed")
)

type CycleRecordRepository interface {
	ListByUser(userID uint) ([]models.CycleRecord, error)
	Create(record *models.CycleRecord) error
}

type CycleInput struct {
	StartDate string
	Symptoms  []string
	Notes     string
}

type CycleService struct {
	cycles CycleRecordRepository
	now    func() time.Time
}

func NewCycleService(cycles CycleRecordRepository) *CycleService {
	return &CycleService{cycles: cycles, now: time.Now}
}

// ListCycles returns cycle starts, most recent first.
func (service *CycleService) ListCycles(userID uint) ([]models.CycleRecord, error) {
	records, err := service.cycles.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCycleLoadFailed, err)
	}
	return records, nil
}

func (service *CycleService) AddCycle(userID uint, input CycleInput) (models.CycleRecord, error) {
	startDate, err := ParseDayDate(input.StartDate)
	if err != nil {
		return models.CycleRecord{}, err
	}

	record := models.CycleRecord{
		PublicID:  uuid.NewString(),
		UserID:    userID,
		StartDate: startDate,
		Symptoms:  NormalizeTags(input.Symptoms),
		Notes:     TrimDayNotes(input.Notes),
		CreatedAt: service.now().UTC(),
	}
	if err := service.cycles.Create(&record); err != nil {
		return models.CycleRecord{}, fmt.Errorf("%w: %w", ErrCycleSaveFailed, err)
	}
	return record, nil
}
