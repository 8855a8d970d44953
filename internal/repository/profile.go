// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"devconnect/internal/cache"
	"devconnect/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for developer profiles.
// Profiles are keyed by their owning user: every lookup and mutation takes a
// user identifier, not a profile row identifier.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	Delete(ctx context.Context, userID uint) error
	AddExperience(ctx context.Context, userID uint, exp *models.Experience) (*models.Profile, error)
	DeleteExperience(ctx context.Context, userID, expID uint) (*models.Profile, error)
	AddEducation(ctx context.Context, userID uint, edu *models.Education) (*models.Profile, error)
	DeleteEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withAssociations preloads the owning user and ordered experience/education entries.
func (r *profileRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"from\" DESC, id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"from\" DESC, id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileKey(userID), &profile, cache.ProfileTTL, func() error {
		err := r.withAssociations(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			First(&profile).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile", userID)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := cache.Aside(ctx, cache.ProfileListKey, &profiles, cache.ProfileListTTL, func() error {
		err := r.withAssociations(r.db.WithContext(ctx)).
			Order("created_at DESC, id DESC").
			Find(&profiles).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert creates the caller's profile, or updates the scalar fields of an
// existing one. Experience and education entries are managed through their own
// methods and are left untouched on update.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	var existing models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", profile.UserID).
		First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if createErr := r.db.WithContext(ctx).Create(profile).Error; createErr != nil {
			return nil, models.NewInternalError(createErr)
		}
	case err != nil:
		return nil, models.NewInternalError(err)
	default:
		existing.Company = profile.Company
		existing.Website = profile.Website
		existing.Location = profile.Location
		existing.Status = profile.Status
		existing.Skills = profile.Skills
		existing.Bio = profile.Bio
		existing.GithubUsername = profile.GithubUsername
		existing.Social = profile.Social
		// Select forces zero values through so cleared fields persist; the
		// struct form keeps the JSON serializers on skills and social working.
		if updateErr := r.db.WithContext(ctx).
			Model(&existing).
			Select("company", "website", "location", "status", "skills", "bio", "github_username", "social").
			Updates(&existing).Error; updateErr != nil {
			return nil, models.NewInternalError(updateErr)
		}
		profile.UserID = existing.UserID
	}

	cache.InvalidateProfile(ctx, profile.UserID)
	return r.GetByUserID(ctx, profile.UserID)
}

func (r *profileRepository) Delete(ctx context.Context, userID uint) error {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return models.NewInternalError(tx.Error)
	}
	if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
		tx.Rollback()
		return models.NewInternalError(err)
	}
	if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
		tx.Rollback()
		return models.NewInternalError(err)
	}
	if err := tx.Delete(&models.Profile{}, profile.ID).Error; err != nil {
		tx.Rollback()
		return models.NewInternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateProfile(ctx, userID)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, userID uint, exp *models.Experience) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateProfile(ctx, userID)
	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) DeleteExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profile.ID).
		Delete(&models.Experience{})
	if result.Error != nil {
		return nil, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Experience", expID)
	}

	cache.InvalidateProfile(ctx, userID)
	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) AddEducation(ctx context.Context, userID uint, edu *models.Education) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidateProfile(ctx, userID)
	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) DeleteEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profile.ID).
		Delete(&models.Education{})
	if result.Error != nil {
		return nil, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Education", eduID)
	}

	cache.InvalidateProfile(ctx, userID)
	return r.GetByUserID(ctx, userID)
}
