package db

import (
	"github.com/terraincognita07/kira/internal/models"
	"gorm.io/gorm"
)

type CycleRecordRepository struct {
	database *gorm.DB
}

func NewCycleRecordRepository(database *gorm.DB) *CycleRecordRepository {
	return &CycleRecordRepository{database: database}
}

// ListByUser returns the user's cycle starts, most recent first.
func (repo *CycleRecordRepository) ListByUser(userID uint) ([]models.CycleRecord, error) {
	records := make([]models.CycleRecord, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("start_date DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *CycleRecordRepository) Create(record *models.CycleRecord) error {
	return repo.database.Create(record).Error
}
