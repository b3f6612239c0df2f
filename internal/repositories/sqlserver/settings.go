package sqlserver

import (
	"context"
	"errors"
	"fmt"

	"communityportal/internal/models/entities"

	"gorm.io/gorm"
)

// Settings reads the CMS settings table.
type Settings struct {
	s *Internal
}

// Settings returns the settings table reader.
func (s *Internal) Settings() *Settings {
	return &Settings{s: s}
}

// Get returns the raw value stored for key.
func (st *Settings) Get(ctx context.Context, key string) (string, bool, error) {
	var setting entities.Setting
	err := st.s.db.WithContext(ctx).
		Where(map[string]interface{}{"key": key}).
		Take(&setting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return setting.Value, true, nil
}

// BusinessCategoryBySlug resolves a directory category slug to its id.
func (s *Internal) BusinessCategoryBySlug(ctx context.Context, slug string) (any, bool, error) {
	var category entities.BusinessCategory
	err := s.db.WithContext(ctx).
		Where(map[string]interface{}{"slug": slug}).
		Take(&category).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to resolve category %s: %w", slug, err)
	}
	return category.ID, true, nil
}
