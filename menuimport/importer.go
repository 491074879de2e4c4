package menuimport

import (
	"context"
	"errors"
	"fmt"
	"io"

	"digital-menu-api/models"
	"digital-menu-api/store"

	"go.uber.org/zap"
)

// Result counts what an import wrote
type Result struct {
	Categories int
	Dishes     int
	Warnings   []string
}

type Importer struct {
	Store *store.Store
	Log   *zap.Logger
}

func NewImporter(s *store.Store, log *zap.Logger) *Importer {
	return &Importer{Store: s, Log: log}
}

// ReplaceMenu wipes the restaurant's menu and loads the parsed one in its
// place. Nothing changes when any write fails.
func (im *Importer) ReplaceMenu(ctx context.Context, slug string, r io.Reader) (*Result, error) {
	menu, err := Parse(r)
	if err != nil {
		return nil, err
	}
	res := &Result{Warnings: menu.Warnings}

	err = im.Store.WithTx(ctx, func(tx *store.Store) error {
		profile, err := tx.ProfileBySlug(ctx, slug)
		if err != nil {
			return fmt.Errorf("restaurant %q: %w", slug, err)
		}
		im.Log.Info("replacing menu", zap.String("slug", slug), zap.String("restaurant_id", profile.ID.String()))

		if err := tx.DeleteAllCategories(ctx, profile.ID); err != nil {
			return err
		}

		for i, parsed := range menu.Categories {
			category := &models.Category{RestaurantID: profile.ID, Name: parsed.Name, SortOrder: i}
			if err := tx.CreateCategory(ctx, category); err != nil {
				return fmt.Errorf("category %q: %w", parsed.Name, err)
			}
			res.Categories++
			im.Log.Debug("category created", zap.String("name", parsed.Name))

			n, err := insertDishes(ctx, tx, category, parsed.Dishes)
			res.Dishes += n
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	im.logResult("menu replaced", slug, res)
	return res, nil
}

// ImportSection appends the dishes of one section to the named category,
// creating the category when the restaurant does not have it yet
func (im *Importer) ImportSection(ctx context.Context, slug, categoryName string, r io.Reader) (*Result, error) {
	dishes, warnings, err := ParseSection(r)
	if err != nil {
		return nil, err
	}
	res := &Result{Warnings: warnings}

	err = im.Store.WithTx(ctx, func(tx *store.Store) error {
		profile, err := tx.ProfileBySlug(ctx, slug)
		if err != nil {
			return fmt.Errorf("restaurant %q: %w", slug, err)
		}

		category, err := tx.FindCategory(ctx, profile.ID, categoryName)
		switch {
		case err == nil:
			im.Log.Info("using existing category", zap.String("name", category.Name), zap.Int64("id", category.ID))
		case errors.Is(err, store.ErrNotFound):
			category = &models.Category{RestaurantID: profile.ID, Name: categoryName}
			if err := tx.CreateCategory(ctx, category); err != nil {
				return fmt.Errorf("category %q: %w", categoryName, err)
			}
			res.Categories++
			im.Log.Info("category created", zap.String("name", category.Name), zap.Int64("id", category.ID))
		default:
			return err
		}

		n, err := insertDishes(ctx, tx, category, dishes)
		res.Dishes = n
		return err
	})
	if err != nil {
		return nil, err
	}

	im.logResult("section imported", slug, res)
	return res, nil
}

func insertDishes(ctx context.Context, tx *store.Store, category *models.Category, dishes []Dish) (int, error) {
	for i, parsed := range dishes {
		dish := &models.Dish{
			RestaurantID: category.RestaurantID,
			CategoryID:   category.ID,
			Name:         parsed.Name,
			Description:  parsed.Description,
			Price:        parsed.Price,
			IsAvailable:  true,
		}
		if err := tx.CreateDish(ctx, dish, nil); err != nil {
			return i, fmt.Errorf("dish %q: %w", parsed.Name, err)
		}
	}
	return len(dishes), nil
}

func (im *Importer) logResult(msg, slug string, res *Result) {
	for _, w := range res.Warnings {
		im.Log.Warn("line skipped", zap.String("slug", slug), zap.String("detail", w))
	}
	im.Log.Info(msg,
		zap.String("slug", slug),
		zap.Int("categories", res.Categories),
		zap.Int("dishes", res.Dishes),
		zap.Int("skipped", len(res.Warnings)),
	)
}
