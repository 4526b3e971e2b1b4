package db

import (
	"strings"

	"github.com/terraincognita07/kira/internal/models"
	"gorm.io/gorm"
)

// UserRepository stores accounts. Email lookups compare the lowercased,
// trimmed address, matching the unique index on users.
type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func withEmail(email string) func(*gorm.DB) *gorm.DB {
	key := strings.ToLower(strings.TrimSpace(email))
	return func(query *gorm.DB) *gorm.DB {
		return query.Where("lower(trim(email)) = ?", key)
	}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	err := repo.database.Take(&user, userID).Error
	return user, err
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	err := repo.database.Scopes(withEmail(email)).Take(&user).Error
	return user, err
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var ids []uint
	err := repo.database.Model(&models.User{}).Scopes(withEmail(email)).Limit(1).Pluck("id", &ids).Error
	return len(ids) > 0, err
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

// UpdatePassword replaces the hash and the forced-change flag. A missing
// user yields gorm.ErrRecordNotFound.
func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	result := repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
