package store

import (
	"context"
	"fmt"
	"strings"

	"digital-menu-api/models"

	"gorm.io/gorm/clause"
)

// ListAllergens returns the reference list ordered by regulatory number
func (s *Store) ListAllergens(ctx context.Context) ([]models.Allergen, error) {
	var allergens []models.Allergen
	if err := s.db.WithContext(ctx).Order("number asc").Find(&allergens).Error; err != nil {
		return nil, fmt.Errorf("list allergens: %w", err)
	}
	return allergens, nil
}

// ResolveAllergens loads the allergens with the given ids. Any id missing from
// the reference list fails with ErrUnknownAllergen.
func (s *Store) ResolveAllergens(ctx context.Context, ids []string) ([]models.Allergen, error) {
	wanted := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		wanted = append(wanted, id)
	}
	if len(wanted) == 0 {
		return []models.Allergen{}, nil
	}

	var found []models.Allergen
	err := s.db.WithContext(ctx).
		Where("id IN ?", wanted).
		Order("number asc").
		Find(&found).Error
	if err != nil {
		return nil, fmt.Errorf("resolve allergens: %w", err)
	}
	if len(found) == len(wanted) {
		return found, nil
	}

	for _, a := range found {
		delete(seen, a.ID)
	}
	var missing []string
	for _, id := range wanted {
		if seen[id] {
			missing = append(missing, id)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAllergen, strings.Join(missing, ", "))
}

// UpsertAllergens inserts the list, overwriting number, icon, name and
// description of rows whose id already exists
func (s *Store) UpsertAllergens(ctx context.Context, allergens []models.Allergen) error {
	if len(allergens) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"number", "icon", "name", "description"}),
	}).Create(&allergens).Error
	if err != nil {
		return fmt.Errorf("upsert allergens: %w", err)
	}
	return nil
}
