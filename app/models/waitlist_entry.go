package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// WaitlistEntry is a public signup captured before launch.
type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (w *WaitlistEntry) Validate() error {
	v := validator.New()

	return v.Struct(w)
}
