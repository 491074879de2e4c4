package store

import (
	"context"
	"database/sql"
	"fmt"

	"digital-menu-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Store) ListCategories(ctx context.Context, ownerID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", ownerID).
		Order("sort_order asc").Order("id asc").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CategoriesWithDishes loads the owner's categories in display order, each with
// its dishes and their allergens
func (s *Store) CategoriesWithDishes(ctx context.Context, ownerID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Preload("Dishes", func(db *gorm.DB) *gorm.DB {
			return db.Order("dishes.id asc")
		}).
		Preload("Dishes.Allergens", func(db *gorm.DB) *gorm.DB {
			return db.Order("allergens.number asc")
		}).
		Where("restaurant_id = ?", ownerID).
		Order("sort_order asc").Order("id asc").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories with dishes: %w", err)
	}
	return categories, nil
}

// CreateCategory appends a category after the owner's existing ones unless a
// sort order is already set
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	db := s.db.WithContext(ctx)
	if c.SortOrder == 0 {
		var maxOrder sql.NullInt64
		err := db.Model(&models.Category{}).
			Where("restaurant_id = ?", c.RestaurantID).
			Select("MAX(sort_order)").
			Row().Scan(&maxOrder)
		if err != nil {
			return fmt.Errorf("next sort order: %w", err)
		}
		if maxOrder.Valid {
			c.SortOrder = int(maxOrder.Int64) + 1
		}
	}
	if err := db.Create(c).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// RenameCategory changes the name (and optionally the position) of one of the owner's categories
func (s *Store) RenameCategory(ctx context.Context, ownerID uuid.UUID, id int64, name string, sortOrder *int) error {
	updates := map[string]interface{}{"name": name}
	if sortOrder != nil {
		updates["sort_order"] = *sortOrder
	}
	res := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND restaurant_id = ?", id, ownerID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes one of the owner's categories and, by cascade, its dishes
func (s *Store) DeleteCategory(ctx context.Context, ownerID uuid.UUID, id int64) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", id, ownerID).
		Delete(&models.Category{})
	if res.Error != nil {
		return fmt.Errorf("delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllCategories wipes the owner's menu. Dishes are removed first so the
// result does not depend on foreign keys being enforced.
func (s *Store) DeleteAllCategories(ctx context.Context, ownerID uuid.UUID) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("restaurant_id = ?", ownerID).Delete(&models.Dish{}).Error; err != nil {
		return fmt.Errorf("delete dishes: %w", err)
	}
	if err := db.Where("restaurant_id = ?", ownerID).Delete(&models.Category{}).Error; err != nil {
		return fmt.Errorf("delete categories: %w", err)
	}
	return nil
}

// FindCategory looks a category up by its exact name within the owner's menu
func (s *Store) FindCategory(ctx context.Context, ownerID uuid.UUID, name string) (*models.Category, error) {
	var c models.Category
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ? AND name = ?", ownerID, name).
		First(&c).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// CategoryOwned reports whether the category exists and belongs to the owner
func (s *Store) CategoryOwned(ctx context.Context, ownerID uuid.UUID, id int64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND restaurant_id = ?", id, ownerID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return count > 0, nil
}

func (s *Store) CountCategories(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("restaurant_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}
