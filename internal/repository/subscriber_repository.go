package repository

import (
	"context"

	"gorm.io/gorm"

	"cultofdrive/internal/db"
	"cultofdrive/internal/errors"
	"cultofdrive/internal/model"
)

// SubscriberRepository stores newsletter subscribers.
type SubscriberRepository interface {
	// Create returns errors.ErrDuplicate when the email is already subscribed.
	Create(ctx context.Context, sub *model.Subscriber) error
}

type subscriberRepository struct {
	db *gorm.DB
}

// NewSubscriberRepository creates a new subscriber repository.
func NewSubscriberRepository(gormDB *gorm.DB) SubscriberRepository {
	return &subscriberRepository{db: gormDB}
}

func (r *subscriberRepository) Create(ctx context.Context, sub *model.Subscriber) error {
	err := r.db.WithContext(ctx).Create(sub).Error
	if db.IsUniqueViolation(err) {
		return errors.ErrDuplicate
	}
	return err
}
