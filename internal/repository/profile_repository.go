package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cultofdrive/internal/db"
	"cultofdrive/internal/errors"
	"cultofdrive/internal/model"
)

// ProfileRepository defines profile persistence operations.
type ProfileRepository interface {
	Save(ctx context.Context, profile *model.Profile) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	FindBySlug(ctx context.Context, slug string) (*model.Profile, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Profile, error)
	SlugTaken(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error)
	List(ctx context.Context, limit, offset int) ([]model.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository builds a GORM-backed repository.
func NewProfileRepository(gormDB *gorm.DB) ProfileRepository {
	return &profileRepository{db: gormDB}
}

// Save inserts or updates a profile. A slug held by someone else yields errors.ErrDuplicate.
func (r *profileRepository) Save(ctx context.Context, profile *model.Profile) error {
	err := r.db.WithContext(ctx).Save(profile).Error
	if db.IsUniqueViolation(err) {
		return errors.ErrDuplicate
	}
	return err
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindBySlug(ctx context.Context, slug string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var profiles []model.Profile
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) SlugTaken(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Profile{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]model.Profile, error) {
	var profiles []model.Profile
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Profile{}).Error
}
