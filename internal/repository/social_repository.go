package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cultofdrive/internal/model"
)

// SocialPostRepository stores the mirrored social feed.
type SocialPostRepository interface {
	List(ctx context.Context, limit int) ([]model.SocialPost, error)
	// Upsert inserts posts, refreshing existing rows matched on external id.
	Upsert(ctx context.Context, posts []model.SocialPost) (int64, error)
}

type socialPostRepository struct {
	db *gorm.DB
}

// NewSocialPostRepository creates a new social post repository.
func NewSocialPostRepository(db *gorm.DB) SocialPostRepository {
	return &socialPostRepository{db: db}
}

func (r *socialPostRepository) List(ctx context.Context, limit int) ([]model.SocialPost, error) {
	var posts []model.SocialPost
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *socialPostRepository) Upsert(ctx context.Context, posts []model.SocialPost) (int64, error) {
	if len(posts) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "content", "image_url", "like_count", "url"}),
	}).Create(&posts)
	return res.RowsAffected, res.Error
}
