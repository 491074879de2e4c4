// Package storetest opens throwaway in-memory databases for tests.
package storetest

import (
	"context"
	"testing"

	"digital-menu-api/config"
	"digital-menu-api/models"
	"digital-menu-api/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/logger"
)

// New returns a Store over a fresh, migrated in-memory SQLite database
func New(t *testing.T) *store.Store {
	t.Helper()
	db, err := config.OpenDB(config.DBConfig{URL: "file::memory:", LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return store.New(db)
}

// Allergens is a small reference list for tests
var Allergens = []models.Allergen{
	{ID: "glutine", Number: 1, Icon: "🌾", Name: "Glutine"},
	{ID: "uova", Number: 3, Icon: "🥚", Name: "Uova"},
	{ID: "latte", Number: 7, Icon: "🥛", Name: "Latte"},
}

// SeedAllergens loads Allergens into s
func SeedAllergens(t *testing.T, s *store.Store) {
	t.Helper()
	if err := s.UpsertAllergens(context.Background(), Allergens); err != nil {
		t.Fatalf("seed allergens: %v", err)
	}
}

// Profile creates a tenant with the given slug
func Profile(t *testing.T, s *store.Store, slug string) *models.Profile {
	t.Helper()
	p := &models.Profile{ID: uuid.New(), Slug: slug, RestaurantName: "Trattoria " + slug}
	if err := s.CreateProfile(context.Background(), p); err != nil {
		t.Fatalf("create profile %s: %v", slug, err)
	}
	return p
}

// Category creates a category in the owner's menu
func Category(t *testing.T, s *store.Store, ownerID uuid.UUID, name string) *models.Category {
	t.Helper()
	c := &models.Category{RestaurantID: ownerID, Name: name}
	if err := s.CreateCategory(context.Background(), c); err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return c
}

// Dish creates a dish priced in euros with optional allergen ids
func Dish(t *testing.T, s *store.Store, c *models.Category, name, price string, allergens ...string) *models.Dish {
	t.Helper()
	d := &models.Dish{
		RestaurantID: c.RestaurantID,
		CategoryID:   c.ID,
		Name:         name,
		Price:        decimal.RequireFromString(price),
		IsAvailable:  true,
	}
	if err := s.CreateDish(context.Background(), d, allergens); err != nil {
		t.Fatalf("create dish %s: %v", name, err)
	}
	return d
}
