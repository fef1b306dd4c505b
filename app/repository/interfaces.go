package repository

import (
	"time"

	"github.com/cordial-ai/cordial/app/models"
)

// AccountRepository covers read-side account access for controllers.
// Balance mutation is not exposed here; that stays behind the ledger.
type AccountRepository interface {
	GetByEmail(email string) (*models.Account, error)
	UpdateLastLogin(email string, t time.Time) error
	Count() (int64, error)
}

// WaitlistRepository persists pre-launch signups.
type WaitlistRepository interface {
	// Add inserts the entry; returns false when the email is already listed.
	Add(entry *models.WaitlistEntry) (bool, error)
	Count() (int64, error)
}

// Repositories bundles all repository instances
type Repositories struct {
	Account  AccountRepository
	Waitlist WaitlistRepository
}
