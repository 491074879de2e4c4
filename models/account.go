package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a login for the built-in identity provider. Its ID becomes the
// Profile ID at onboarding.
type Account struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
