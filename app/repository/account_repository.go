package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/cordial-ai/cordial/app/models"
)

// accountRepository implements the AccountRepository interface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// GetByEmail retrieves an account by its email address
func (r *accountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	err := r.db.Where("email = ?", email).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateLastLogin stamps the informational last-login timestamp
func (r *accountRepository) UpdateLastLogin(email string, t time.Time) error {
	return r.db.Model(&models.Account{}).
		Where("email = ?", email).
		UpdateColumn("last_login_at", t).Error
}

// Count returns the total number of accounts
func (r *accountRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Account{}).Count(&count).Error
	return count, err
}
