package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cordial-ai/cordial/app/models"
)

// waitlistRepository implements the WaitlistRepository interface
type waitlistRepository struct {
	db *gorm.DB
}

// NewWaitlistRepository creates a new waitlist repository instance
func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

// Add inserts the entry unless the email is already on the list.
func (r *waitlistRepository) Add(entry *models.WaitlistEntry) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(entry)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Count returns the number of waitlist signups
func (r *waitlistRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.WaitlistEntry{}).Count(&count).Error
	return count, err
}
