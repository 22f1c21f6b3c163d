package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cultofdrive/internal/db"
	"cultofdrive/internal/errors"
	"cultofdrive/internal/model"
)

// ReactionRepository stores one-per-user reactions to a car, such as favorites and likes.
type ReactionRepository interface {
	// Add returns errors.ErrDuplicate when the user already reacted.
	Add(ctx context.Context, carID, userID uuid.UUID) error
	Remove(ctx context.Context, carID, userID uuid.UUID) (bool, error)
	Exists(ctx context.Context, carID, userID uuid.UUID) (bool, error)
	Count(ctx context.Context, carID uuid.UUID) (int64, error)
}

type reactionRepository struct {
	db     *gorm.DB
	newRow func(carID, userID uuid.UUID) interface{}
}

// NewFavoriteRepository creates a repository over the favorites table.
func NewFavoriteRepository(gormDB *gorm.DB) ReactionRepository {
	return &reactionRepository{db: gormDB, newRow: func(carID, userID uuid.UUID) interface{} {
		return &model.Favorite{CarID: carID, UserID: userID}
	}}
}

// NewLikeRepository creates a repository over the likes table.
func NewLikeRepository(gormDB *gorm.DB) ReactionRepository {
	return &reactionRepository{db: gormDB, newRow: func(carID, userID uuid.UUID) interface{} {
		return &model.Like{CarID: carID, UserID: userID}
	}}
}

func (r *reactionRepository) Add(ctx context.Context, carID, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).Create(r.newRow(carID, userID)).Error
	if db.IsUniqueViolation(err) {
		return errors.ErrDuplicate
	}
	return err
}

func (r *reactionRepository) Remove(ctx context.Context, carID, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("car_id = ? AND user_id = ?", carID, userID).
		Delete(r.newRow(uuid.Nil, uuid.Nil))
	return res.RowsAffected > 0, res.Error
}

func (r *reactionRepository) Exists(ctx context.Context, carID, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(r.newRow(uuid.Nil, uuid.Nil)).
		Where("car_id = ? AND user_id = ?", carID, userID).
		Count(&n).Error
	return n > 0, err
}

func (r *reactionRepository) Count(ctx context.Context, carID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(r.newRow(uuid.Nil, uuid.Nil)).
		Where("car_id = ?", carID).
		Count(&n).Error
	return n, err
}
