package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	STATUS_ACTIVE   = "active"
	STATUS_DISABLED = "disabled"
)

// Account is the per-user entitlement record. The email is the primary
// lookup key and is stored case-sensitive exactly as supplied by the
// identity provider. CreditBalance may only be mutated through the
// ledger's atomic store primitives, never via read-modify-write.
type Account struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Email           string         `gorm:"uniqueIndex;type:varchar(200) CHARACTER SET utf8 COLLATE utf8_bin" json:"email" validate:"required,email,min=5,max=200"`
	Name            string         `gorm:"type:varchar(150)" json:"name" validate:"max=150"`
	AvatarURL       string         `gorm:"type:varchar(255);default:null" json:"avatar_url" validate:"max=255"`
	Status          string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active disabled"`
	CreditBalance   int64          `gorm:"not null;default:0" json:"credit_balance" validate:"gte=0"`
	LastDailyClaim  *time.Time     `gorm:"type:timestamp;default:null" json:"last_daily_claim"`
	GenerationCount int64          `gorm:"not null;default:0" json:"generation_count"`
	LastLoginAt     *time.Time     `gorm:"type:timestamp;default:null" json:"last_login_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Account) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// NewAccount builds an active account seeded with the given starting balance.
func NewAccount(email, name, avatarURL string, startingCredits int64) (*Account, error) {
	a := &Account{
		Email:         email,
		Name:          name,
		AvatarURL:     avatarURL,
		Status:        STATUS_ACTIVE,
		CreditBalance: startingCredits,
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}

	return a, nil
}

// IsActive reports whether the account status is active
func (a *Account) IsActive() bool {
	return a.Status == STATUS_ACTIVE
}
