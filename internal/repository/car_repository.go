package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cultofdrive/internal/model"
)

// CarFilter narrows car listings. Zero values mean "no filter".
type CarFilter struct {
	Featured *bool
	UserID   *uuid.UUID
	Tag      string
	Limit    int
	Offset   int
}

// CarRepository defines car persistence operations.
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	Update(ctx context.Context, car *model.Car) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	List(ctx context.Context, filter CarFilter) ([]model.Car, error)
	Count(ctx context.Context, filter CarFilter) (int64, error)
}

type carRepository struct {
	db *gorm.DB
}

// NewCarRepository creates a new car repository.
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

// Create creates a new car.
func (r *carRepository) Create(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

// Update saves every column of an existing car.
func (r *carRepository) Update(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

// Delete removes a car and the rows hanging off it.
func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dep := range []interface{}{&model.Favorite{}, &model.Like{}, &model.Comment{}, &model.CarView{}, &model.Notification{}} {
			if err := tx.Where("car_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&model.Car{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// FindByID finds a car by ID.
func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	var car model.Car
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// List returns cars newest first, featured cars leading when not filtered on.
func (r *carRepository) List(ctx context.Context, filter CarFilter) ([]model.Car, error) {
	var cars []model.Car
	q := r.filtered(ctx, filter).Order("is_featured DESC").Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// Count counts cars matching the filter, ignoring paging.
func (r *carRepository) Count(ctx context.Context, filter CarFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, filter).Count(&n).Error
	return n, err
}

func (r *carRepository) filtered(ctx context.Context, filter CarFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Car{})
	if filter.Featured != nil {
		q = q.Where("is_featured = ?", *filter.Featured)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Tag != "" {
		q = q.Where("? = ANY(tags)", filter.Tag)
	}
	return q
}
