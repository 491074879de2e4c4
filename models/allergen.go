package models

import "time"

// Allergen is an entry of the regulated reference list (EU Reg. 1169/2011)
type Allergen struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Number      int       `json:"number" gorm:"uniqueIndex;not null"`
	Icon        string    `json:"icon" gorm:"not null"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
