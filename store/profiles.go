package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"digital-menu-api/models"

	"github.com/google/uuid"
)

// ProfileUpdate carries the editable profile fields. Slug and theme are not editable.
type ProfileUpdate struct {
	RestaurantName string
	Description    string
	Address        string
	Phone          string
	WebsiteURL     string
	InstagramURL   string
	FacebookURL    string
	WhatsappNumber string
	LogoURL        string
	OpeningHours   json.RawMessage
}

// CreateProfile inserts a new tenant. It returns ErrProfileExists when the
// owner already has a profile and ErrDuplicateSlug when another tenant holds the slug.
func (s *Store) CreateProfile(ctx context.Context, p *models.Profile) error {
	if p.ThemeColor == "" {
		p.ThemeColor = models.DefaultThemeColor
	}
	err := s.db.WithContext(ctx).Create(p).Error
	if err == nil {
		return nil
	}
	if !isUniqueViolation(err) {
		return fmt.Errorf("create profile: %w", err)
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", p.ID).Count(&n).Error; err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	if n > 0 {
		return ErrProfileExists
	}
	return ErrDuplicateSlug
}

func (s *Store) ProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) ProfileBySlug(ctx context.Context, slug string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// UpdateProfile overwrites the editable fields of the owner's profile
func (s *Store) UpdateProfile(ctx context.Context, ownerID uuid.UUID, u ProfileUpdate) error {
	hours := u.OpeningHours
	if len(hours) == 0 {
		hours = json.RawMessage("null")
	}
	res := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", ownerID).
		Updates(map[string]interface{}{
			"restaurant_name": u.RestaurantName,
			"description":     u.Description,
			"address":         u.Address,
			"phone":           u.Phone,
			"website_url":     u.WebsiteURL,
			"instagram_url":   u.InstagramURL,
			"facebook_url":    u.FacebookURL,
			"whatsapp_number": u.WhatsappNumber,
			"logo_url":        u.LogoURL,
			"opening_hours":   string(hours),
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProfile removes a tenant; categories and dishes go with it
func (s *Store) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Profile{})
	if res.Error != nil {
		return fmt.Errorf("delete profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
