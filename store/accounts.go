package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"digital-menu-api/models"

	"github.com/google/uuid"
)

var ErrDuplicateEmail = errors.New("email already registered")

func (s *Store) CreateAccount(ctx context.Context, a *models.Account) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (s *Store) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *Store) AccountByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var a models.Account
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}
