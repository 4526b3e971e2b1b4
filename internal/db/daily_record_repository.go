package db

import (
	"github.com/terraincognita07/kira/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyRecordRepository struct {
	database *gorm.DB
}

func NewDailyRecordRepository(database *gorm.DB) *DailyRecordRepository {
	return &DailyRecordRepository{database: database}
}

func (repo *DailyRecordRepository) ListByUser(userID uint) ([]models.DailyRecord, error) {
	records := make([]models.DailyRecord, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByUserRange returns records with fromDate <= date < toDate. Empty bounds
// are open. Dates are ISO strings so lexical order is calendar order.
func (repo *DailyRecordRepository) ListByUserRange(userID uint, fromDate string, toDate string) ([]models.DailyRecord, error) {
	query := repo.database.Model(&models.DailyRecord{}).Where("user_id = ?", userID)
	if fromDate != "" {
		query = query.Where("date >= ?", fromDate)
	}
	if toDate != "" {
		query = query.Where("date < ?", toDate)
	}

	records := make([]models.DailyRecord, 0)
	if err := query.Order("date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *DailyRecordRepository) FindByUserAndDate(userID uint, date string) (models.DailyRecord, bool, error) {
	record := models.DailyRecord{}
	result := repo.database.
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.DailyRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *DailyRecordRepository) Create(record *models.DailyRecord) error {
	return repo.database.Create(record).Error
}

// Upsert inserts the record or, when (user_id, date) already exists,
// overwrites every tracked field of the stored row in the same statement.
func (repo *DailyRecordRepository) Upsert(record *models.DailyRecord) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"flow", "mood", "energy", "sleep", "symptoms", "notes", "is_period", "updated_at",
		}),
	}).Create(record).Error
}

func (repo *DailyRecordRepository) DeleteByUserAndDate(userID uint, date string) error {
	return repo.database.Where("user_id = ? AND date = ?", userID, date).Delete(&models.DailyRecord{}).Error
}
