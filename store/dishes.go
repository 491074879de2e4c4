package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digital-menu-api/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DishUpdate is a full edit of a dish. ImageURL and IsAvailable are left
// untouched when nil.
type DishUpdate struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  int64
	Allergens   []string
	ImageURL    *string
	IsAvailable *bool
}

// ListDishes returns the owner's dishes newest first, each with its category name
func (s *Store) ListDishes(ctx context.Context, ownerID uuid.UUID) ([]models.Dish, error) {
	var dishes []models.Dish
	err := s.db.WithContext(ctx).
		Preload("Category", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "restaurant_id", "sort_order")
		}).
		Preload("Allergens", func(db *gorm.DB) *gorm.DB {
			return db.Order("allergens.number asc")
		}).
		Where("restaurant_id = ?", ownerID).
		Order("created_at desc").Order("id desc").
		Find(&dishes).Error
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, nil
}

func (s *Store) DishByID(ctx context.Context, ownerID uuid.UUID, id int64) (*models.Dish, error) {
	var d models.Dish
	err := s.db.WithContext(ctx).
		Preload("Allergens", func(db *gorm.DB) *gorm.DB {
			return db.Order("allergens.number asc")
		}).
		Where("id = ? AND restaurant_id = ?", id, ownerID).
		First(&d).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

// CreateDish inserts the dish and links the given allergen ids, which must all exist
func (s *Store) CreateDish(ctx context.Context, d *models.Dish, allergenIDs []string) error {
	return s.WithTx(ctx, func(tx *Store) error {
		allergens, err := tx.ResolveAllergens(ctx, allergenIDs)
		if err != nil {
			return err
		}
		d.Allergens = allergens
		available := d.IsAvailable
		db := tx.db.WithContext(ctx)
		if err := db.Omit("Category", "Allergens.*").Create(d).Error; err != nil {
			return fmt.Errorf("create dish: %w", err)
		}
		// false is the zero value, so the insert fell back to the column default
		if !available {
			if err := db.Model(&models.Dish{}).Where("id = ?", d.ID).Update("is_available", false).Error; err != nil {
				return fmt.Errorf("create dish: %w", err)
			}
			d.IsAvailable = false
		}
		return nil
	})
}

// UpdateDish edits one of the owner's dishes and replaces its allergen links
func (s *Store) UpdateDish(ctx context.Context, ownerID uuid.UUID, id int64, u DishUpdate) error {
	return s.WithTx(ctx, func(tx *Store) error {
		allergens, err := tx.ResolveAllergens(ctx, u.Allergens)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":        u.Name,
			"description": u.Description,
			"price":       u.Price,
			"category_id": u.CategoryID,
			"updated_at":  time.Now(),
		}
		if u.ImageURL != nil {
			updates["image_url"] = *u.ImageURL
		}
		if u.IsAvailable != nil {
			updates["is_available"] = *u.IsAvailable
		}

		db := tx.db.WithContext(ctx)
		res := db.Model(&models.Dish{}).
			Where("id = ? AND restaurant_id = ?", id, ownerID).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update dish: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		dish := &models.Dish{ID: id, RestaurantID: ownerID}
		if err := db.Model(dish).Association("Allergens").Replace(allergens); err != nil {
			return fmt.Errorf("replace dish allergens: %w", err)
		}
		return nil
	})
}

// DeleteDish removes one of the owner's dishes
func (s *Store) DeleteDish(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", id, ownerID).
		Delete(&models.Dish{})
	if res.Error != nil {
		return fmt.Errorf("delete dish: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CountDishes(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Dish{}).
		Where("restaurant_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count dishes: %w", err)
	}
	return count, nil
}

// FirstDish returns the owner's oldest dish, or ErrNotFound when the menu is empty
func (s *Store) FirstDish(ctx context.Context, ownerID uuid.UUID) (*models.Dish, error) {
	var d models.Dish
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", ownerID).
		Order("id asc").
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("first dish: %w", err)
	}
	return &d, nil
}
