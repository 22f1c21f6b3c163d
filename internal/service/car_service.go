package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cultofdrive/internal/cache"
	"cultofdrive/internal/errors"
	"cultofdrive/internal/media"
	"cultofdrive/internal/model"
	"cultofdrive/internal/normalize"
	"cultofdrive/internal/repository"
)

const carCacheTTL = 5 * time.Minute

// CarInput is the loosely typed car payload accepted by the API. Absent fields are
// left untouched on update.
type CarInput struct {
	Model       *string              `json:"model"`
	Year        normalize.Int        `json:"year" swaggertype:"integer"`
	ImagePath   *string              `json:"image_path"`
	Description *string              `json:"description"`
	Specs       normalize.SpecsInput `json:"specs" swaggertype:"array,string"`
	Tags        normalize.TagsInput  `json:"tags" swaggertype:"array,string"`
	IsFeatured  normalize.Bool       `json:"is_featured" swaggertype:"boolean"`
}

// CarResponse is a car shaped for the UI, with its image resolved to a URL.
type CarResponse struct {
	model.Car
	ImageURL string       `json:"image_url"`
	Owner    *UserSummary `json:"owner,omitempty"`
}

// CarService handles car gallery operations.
type CarService interface {
	ListCars(ctx context.Context, filter repository.CarFilter) ([]CarResponse, int64, error)
	GetCar(ctx context.Context, id uuid.UUID) (*CarResponse, error)
	// CreateCar creates a car owned by ownerID. The feature flag is ignored.
	CreateCar(ctx context.Context, ownerID uuid.UUID, in CarInput) (*CarResponse, error)
	// ImportCar creates a car with every field honoured, owner optional.
	ImportCar(ctx context.Context, ownerID *uuid.UUID, in CarInput) (*CarResponse, error)
	UpdateCar(ctx context.Context, id, actorID uuid.UUID, in CarInput) (*CarResponse, error)
	DeleteCar(ctx context.Context, id, actorID uuid.UUID) error
	AdminUpdateCar(ctx context.Context, id uuid.UUID, in CarInput) (*CarResponse, error)
	AdminDeleteCar(ctx context.Context, id uuid.UUID) error
}

type carService struct {
	carRepo     repository.CarRepository
	profileRepo repository.ProfileRepository
	resolver    *media.Resolver
	validator   *CarValidator
	cache       *cache.Client
}

// NewCarService creates a new car service.
func NewCarService(
	carRepo repository.CarRepository,
	profileRepo repository.ProfileRepository,
	resolver *media.Resolver,
	validator *CarValidator,
	cache *cache.Client,
) CarService {
	return &carService{
		carRepo:     carRepo,
		profileRepo: profileRepo,
		resolver:    resolver,
		validator:   validator,
		cache:       cache,
	}
}

func (s *carService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("car:%s", id)
}

// ListCars lists cars with their owners attached.
func (s *carService) ListCars(ctx context.Context, filter repository.CarFilter) ([]CarResponse, int64, error) {
	cars, err := s.carRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list cars: %w", err)
	}
	total, err := s.carRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count cars: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(cars))
	for _, car := range cars {
		if car.UserID != nil {
			ids = append(ids, *car.UserID)
		}
	}
	owners, err := lookupPeople(ctx, s.profileRepo, s.resolver, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("load owners: %w", err)
	}

	out := make([]CarResponse, 0, len(cars))
	for i := range cars {
		out = append(out, *carResponse(&cars[i], owners, s.resolver))
	}
	return out, total, nil
}

// GetCar returns one car, served from cache when possible.
func (s *carService) GetCar(ctx context.Context, id uuid.UUID) (*CarResponse, error) {
	car, err := s.findCar(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withOwner(ctx, car)
}

func (s *carService) CreateCar(ctx context.Context, ownerID uuid.UUID, in CarInput) (*CarResponse, error) {
	in.IsFeatured = normalize.Bool{}
	return s.create(ctx, &ownerID, in)
}

func (s *carService) ImportCar(ctx context.Context, ownerID *uuid.UUID, in CarInput) (*CarResponse, error) {
	return s.create(ctx, ownerID, in)
}

func (s *carService) create(ctx context.Context, ownerID *uuid.UUID, in CarInput) (*CarResponse, error) {
	if err := s.validator.ValidateCreate(in); err != nil {
		return nil, err
	}

	car := &model.Car{UserID: ownerID, Specs: []string{}, Tags: []string{}}
	applyCarInput(car, in)
	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	return s.withOwner(ctx, car)
}

// UpdateCar applies a partial update on behalf of the car's owner.
func (s *carService) UpdateCar(ctx context.Context, id, actorID uuid.UUID, in CarInput) (*CarResponse, error) {
	in.IsFeatured = normalize.Bool{}
	return s.update(ctx, id, &actorID, in)
}

func (s *carService) AdminUpdateCar(ctx context.Context, id uuid.UUID, in CarInput) (*CarResponse, error) {
	return s.update(ctx, id, nil, in)
}

func (s *carService) update(ctx context.Context, id uuid.UUID, actorID *uuid.UUID, in CarInput) (*CarResponse, error) {
	if err := s.validator.ValidateUpdate(in); err != nil {
		return nil, err
	}

	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.ErrCarNotFound
		}
		return nil, fmt.Errorf("get car: %w", err)
	}
	if actorID != nil && !car.OwnedBy(*actorID) {
		return nil, errors.ErrUnauthorized
	}

	applyCarInput(car, in)
	if err := s.carRepo.Update(ctx, car); err != nil {
		return nil, fmt.Errorf("update car: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return s.withOwner(ctx, car)
}

// DeleteCar deletes a car on behalf of its owner.
func (s *carService) DeleteCar(ctx context.Context, id, actorID uuid.UUID) error {
	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.ErrCarNotFound
		}
		return fmt.Errorf("get car: %w", err)
	}
	if !car.OwnedBy(actorID) {
		return errors.ErrUnauthorized
	}
	return s.AdminDeleteCar(ctx, id)
}

func (s *carService) AdminDeleteCar(ctx context.Context, id uuid.UUID) error {
	if err := s.carRepo.Delete(ctx, id); err != nil {
		if errors.IsNotFound(err) {
			return errors.ErrCarNotFound
		}
		return fmt.Errorf("delete car: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func (s *carService) findCar(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Car
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.ErrCarNotFound
		}
		return nil, fmt.Errorf("get car: %w", err)
	}

	if payload, err := json.Marshal(car); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, carCacheTTL)
	}
	return car, nil
}

func (s *carService) withOwner(ctx context.Context, car *model.Car) (*CarResponse, error) {
	var ids []uuid.UUID
	if car.UserID != nil {
		ids = append(ids, *car.UserID)
	}
	owners, err := lookupPeople(ctx, s.profileRepo, s.resolver, ids)
	if err != nil {
		return nil, fmt.Errorf("load owner: %w", err)
	}
	return carResponse(car, owners, s.resolver), nil
}

func carResponse(car *model.Car, owners map[uuid.UUID]*UserSummary, resolver *media.Resolver) *CarResponse {
	resp := &CarResponse{Car: *car, ImageURL: resolver.ResolveImageSource(car.ImagePath)}
	if car.UserID != nil {
		resp.Owner = owners[*car.UserID]
	}
	return resp
}

func applyCarInput(car *model.Car, in CarInput) {
	if in.Model != nil {
		car.Model = strings.TrimSpace(*in.Model)
	}
	if in.Year.Set {
		car.Year = in.Year.Ptr()
	}
	if in.ImagePath != nil {
		car.ImagePath = strings.TrimSpace(*in.ImagePath)
	}
	if in.Description != nil {
		car.Description = strings.TrimSpace(*in.Description)
	}
	if in.Specs.IsSet() {
		car.Specs = normalize.Specs(in.Specs)
	}
	if in.Tags.IsSet() {
		car.Tags = normalize.Tags(in.Tags)
	}
	if in.IsFeatured.Set {
		car.IsFeatured = in.IsFeatured.Value
	}
}
