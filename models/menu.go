package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	RestaurantID uuid.UUID `json:"restaurant_id" gorm:"type:uuid;not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	SortOrder    int       `json:"sort_order" gorm:"default:0"`
	Dishes       []Dish    `json:"dishes,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"created_at"`
}

// Dish is a menu item. Allergens go through the dish_allergens join table so
// every tag refers to a row of the allergen reference list.
type Dish struct {
	ID           int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	RestaurantID uuid.UUID       `json:"restaurant_id" gorm:"type:uuid;not null;index"`
	CategoryID   int64           `json:"category_id" gorm:"not null;index"`
	Category     *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	ImageURL     string          `json:"image_url"`
	IsAvailable  bool            `json:"is_available" gorm:"default:true"`
	Allergens    []Allergen      `json:"allergens" gorm:"many2many:dish_allergens;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AllergenIDs returns the short identifiers of the dish's allergens
func (d *Dish) AllergenIDs() []string {
	ids := make([]string, 0, len(d.Allergens))
	for _, a := range d.Allergens {
		ids = append(ids, a.ID)
	}
	return ids
}
