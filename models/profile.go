package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Profile is one restaurant (tenant). Its ID is the identity user's ID and
// Slug is the public URL segment; neither changes after onboarding.
type Profile struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Slug           string          `json:"slug" gorm:"uniqueIndex;not null"`
	RestaurantName string          `json:"restaurant_name" gorm:"not null"`
	ThemeColor     string          `json:"theme_color" gorm:"default:'orange'"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	LogoURL        string          `json:"logo_url"`
	Description    string          `json:"description"`
	InstagramURL   string          `json:"instagram_url"`
	FacebookURL    string          `json:"facebook_url"`
	WhatsappNumber string          `json:"whatsapp_number"`
	WebsiteURL     string          `json:"website_url"`
	OpeningHours   json.RawMessage `json:"opening_hours" gorm:"type:jsonb;serializer:json"`
	Categories     []Category      `json:"categories,omitempty" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	Dishes         []Dish          `json:"-" gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DefaultThemeColor is assigned at onboarding
const DefaultThemeColor = "orange"
