package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tomasrg/jobhunter/internal/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db}
}

// First returns the single stored profile, nil when none exists yet.
func (r *ProfileRepository) First(ctx context.Context) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save upserts the profile. There is only ever one row; an existing row is
// updated in place, otherwise a new one is created.
func (r *ProfileRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	existing, err := r.First(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		return r.db.WithContext(ctx).Save(profile).Error
	}
	return r.db.WithContext(ctx).Create(profile).Error
}
