package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cultofdrive/internal/cache"
	"cultofdrive/internal/errors"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
)

const (
	viewDedupeWindow  = 30 * time.Minute
	dashboardCacheKey = "analytics:dashboard"
	dashboardCacheTTL = time.Minute
	topCarsLimit      = 10
	signupDays        = 30
)

// SiteStats are the public site-wide counters.
type SiteStats struct {
	Cars         int64 `json:"cars"`
	FeaturedCars int64 `json:"featured_cars"`
	Members      int64 `json:"members"`
	Views        int64 `json:"views"`
	Favorites    int64 `json:"favorites"`
	Likes        int64 `json:"likes"`
	Comments     int64 `json:"comments"`
}

// Totals are the headline numbers of the admin dashboard.
type Totals struct {
	SiteStats
	Listings       map[model.ListingStatus]int64 `json:"listings"`
	PendingReports int64                         `json:"pending_reports"`
	Subscribers    int64                         `json:"subscribers"`
}

// Dashboard is the admin analytics payload.
type Dashboard struct {
	Totals      Totals                  `json:"totals"`
	TopCars     []repository.TopCar     `json:"top_cars"`
	Signups     []repository.DailyCount `json:"signups"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// AnalyticsService counts views and aggregates statistics.
type AnalyticsService interface {
	// TrackView records a view unless the same client viewed the car recently.
	TrackView(ctx context.Context, carID uuid.UUID, clientIP string) (bool, error)
	SiteStats(ctx context.Context) (*SiteStats, error)
	CarStats(ctx context.Context, carID uuid.UUID) (*repository.CarActivity, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type analyticsService struct {
	statsRepo repository.StatsRepository
	carRepo   repository.CarRepository
	cache     *cache.Client
	logger    *zap.Logger
	now       func() time.Time
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(statsRepo repository.StatsRepository, carRepo repository.CarRepository, cache *cache.Client, logger *zap.Logger) AnalyticsService {
	return &analyticsService{
		statsRepo: statsRepo,
		carRepo:   carRepo,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *analyticsService) TrackView(ctx context.Context, carID uuid.UUID, clientIP string) (bool, error) {
	if err := s.ensureCar(ctx, carID); err != nil {
		return false, err
	}
	key := fmt.Sprintf("view:%s:%s", carID, clientIP)
	if !s.cache.SetNX(ctx, key, []byte("1"), viewDedupeWindow) {
		return false, nil
	}
	if err := s.statsRepo.RecordView(ctx, carID); err != nil {
		return false, fmt.Errorf("record view: %w", err)
	}
	return true, nil
}

func (s *analyticsService) CarStats(ctx context.Context, carID uuid.UUID) (*repository.CarActivity, error) {
	if err := s.ensureCar(ctx, carID); err != nil {
		return nil, err
	}
	activity, err := s.statsRepo.CarActivity(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("car activity: %w", err)
	}
	return activity, nil
}

func (s *analyticsService) SiteStats(ctx context.Context) (*SiteStats, error) {
	var out SiteStats
	g, gctx := errgroup.WithContext(ctx)
	s.countInto(gctx, g, &model.Car{}, &out.Cars)
	s.countInto(gctx, g, &model.Profile{}, &out.Members)
	s.countInto(gctx, g, &model.CarView{}, &out.Views)
	s.countInto(gctx, g, &model.Favorite{}, &out.Favorites)
	s.countInto(gctx, g, &model.Like{}, &out.Likes)
	s.countInto(gctx, g, &model.Comment{}, &out.Comments)
	g.Go(func() (err error) {
		out.FeaturedCars, err = s.statsRepo.CountFeaturedCars(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("site stats: %w", err)
	}
	return &out, nil
}

// Dashboard runs the dashboard queries concurrently and caches the result briefly.
func (s *analyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	if data, _ := s.cache.Get(ctx, dashboardCacheKey); data != nil {
		var cached Dashboard
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	site, err := s.SiteStats(ctx)
	if err != nil {
		return nil, err
	}
	out := &Dashboard{Totals: Totals{SiteStats: *site}, GeneratedAt: s.now().UTC()}

	since := s.now().UTC().AddDate(0, 0, -signupDays)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Totals.Listings, err = s.statsRepo.ListingsByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.Totals.PendingReports, err = s.statsRepo.CountPendingReports(gctx)
		return err
	})
	s.countInto(gctx, g, &model.Subscriber{}, &out.Totals.Subscribers)
	g.Go(func() (err error) {
		out.TopCars, err = s.statsRepo.TopViewedCars(gctx, topCarsLimit)
		return err
	})
	g.Go(func() (err error) {
		out.Signups, err = s.statsRepo.SignupsSince(gctx, since)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard aggregation failed", zap.Error(err))
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	if payload, err := json.Marshal(out); err == nil {
		_ = s.cache.Set(ctx, dashboardCacheKey, payload, dashboardCacheTTL)
	}
	return out, nil
}

func (s *analyticsService) countInto(ctx context.Context, g *errgroup.Group, m interface{}, dst *int64) {
	g.Go(func() (err error) {
		*dst, err = s.statsRepo.CountRows(ctx, m)
		return err
	})
}

func (s *analyticsService) ensureCar(ctx context.Context, carID uuid.UUID) error {
	if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
		if errors.IsNotFound(err) {
			return errors.ErrCarNotFound
		}
		return fmt.Errorf("get car: %w", err)
	}
	return nil
}
