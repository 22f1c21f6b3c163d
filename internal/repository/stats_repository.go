package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cultofdrive/internal/model"
)

// CarActivity holds the interaction counters for one car.
type CarActivity struct {
	Views     int64 `json:"views"`
	Favorites int64 `json:"favorites"`
	Likes     int64 `json:"likes"`
	Comments  int64 `json:"comments"`
}

// TopCar is a car ranked by counted views.
type TopCar struct {
	CarID uuid.UUID `json:"car_id"`
	Model string    `json:"model"`
	Views int64     `json:"views"`
}

// DailyCount is a per-day tally, Day formatted as YYYY-MM-DD.
type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// StatsRepository runs the aggregate queries behind stats and the admin dashboard.
type StatsRepository interface {
	RecordView(ctx context.Context, carID uuid.UUID) error
	CarActivity(ctx context.Context, carID uuid.UUID) (*CarActivity, error)
	CountRows(ctx context.Context, m interface{}) (int64, error)
	CountFeaturedCars(ctx context.Context) (int64, error)
	CountPendingReports(ctx context.Context) (int64, error)
	ListingsByStatus(ctx context.Context) (map[model.ListingStatus]int64, error)
	TopViewedCars(ctx context.Context, limit int) ([]TopCar, error)
	SignupsSince(ctx context.Context, since time.Time) ([]DailyCount, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) RecordView(ctx context.Context, carID uuid.UUID) error {
	return r.db.WithContext(ctx).Create(&model.CarView{CarID: carID}).Error
}

func (r *statsRepository) CarActivity(ctx context.Context, carID uuid.UUID) (*CarActivity, error) {
	var out CarActivity
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&model.CarView{}, &out.Views},
		{&model.Favorite{}, &out.Favorites},
		{&model.Like{}, &out.Likes},
		{&model.Comment{}, &out.Comments},
	}
	for _, c := range counts {
		if err := r.db.WithContext(ctx).Model(c.model).Where("car_id = ?", carID).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}
	return &out, nil
}

// CountRows counts every row of the table behind m, e.g. &model.Car{}.
func (r *statsRepository) CountRows(ctx context.Context, m interface{}) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(m).Count(&n).Error
	return n, err
}

func (r *statsRepository) CountFeaturedCars(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Car{}).Where("is_featured = ?", true).Count(&n).Error
	return n, err
}

func (r *statsRepository) CountPendingReports(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Report{}).Where("status = ?", model.ReportStatusPending).Count(&n).Error
	return n, err
}

func (r *statsRepository) ListingsByStatus(ctx context.Context) (map[model.ListingStatus]int64, error) {
	var rows []struct {
		Status model.ListingStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.MarketplaceListing{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.ListingStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *statsRepository) TopViewedCars(ctx context.Context, limit int) ([]TopCar, error) {
	var out []TopCar
	err := r.db.WithContext(ctx).Table("car_views").
		Select("cars.id AS car_id, cars.model AS model, COUNT(car_views.id) AS views").
		Joins("JOIN cars ON cars.id = car_views.car_id").
		Group("cars.id, cars.model").
		Order("views DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *statsRepository) SignupsSince(ctx context.Context, since time.Time) ([]DailyCount, error) {
	var out []DailyCount
	err := r.db.WithContext(ctx).Model(&model.Profile{}).
		Select("to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&out).Error
	return out, err
}
