package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cultofdrive/internal/authadmin"
	"cultofdrive/internal/cache"
	"cultofdrive/internal/errors"
	"cultofdrive/internal/media"
	"cultofdrive/internal/model"
	"cultofdrive/internal/normalize"
	"cultofdrive/internal/repository"
)

const (
	profileCacheTTL   = 5 * time.Minute
	profileCarsLimit  = 100
	minDisplayNameLen = 2
	maxDisplayNameLen = 50
	maxBioLen         = 500
	fallbackSlug      = "driver"
)

// UserDirectory is the auth service's account store.
type UserDirectory interface {
	ListUsers(ctx context.Context, page, perPage int) ([]authadmin.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// ProfileInput is the editable part of a profile.
type ProfileInput struct {
	DisplayName string  `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
	Email       *string `json:"email"`
}

// ProfilePage is a public profile with the member's cars.
type ProfilePage struct {
	Profile *model.Profile `json:"profile"`
	Cars    []CarResponse  `json:"cars"`
}

// AdminUser merges an auth account with its profile, either of which may be missing.
type AdminUser struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"display_name,omitempty"`
	Slug         string     `json:"slug,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
	HasProfile   bool       `json:"has_profile"`
}

// ProfileService manages member profiles.
type ProfileService interface {
	GetBySlug(ctx context.Context, slug string) (*ProfilePage, error)
	Upsert(ctx context.Context, userID uuid.UUID, in ProfileInput) (*model.Profile, error)
	AdminList(ctx context.Context, limit, offset int) ([]AdminUser, error)
	AdminDelete(ctx context.Context, id uuid.UUID) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
	carRepo     repository.CarRepository
	directory   UserDirectory
	resolver    *media.Resolver
	cache       *cache.Client
	logger      *zap.Logger
}

// NewProfileService builds a ProfileService. directory may be nil when the auth admin
// API is not configured, in which case admin listings come from profiles alone.
func NewProfileService(
	profileRepo repository.ProfileRepository,
	carRepo repository.CarRepository,
	directory UserDirectory,
	resolver *media.Resolver,
	cache *cache.Client,
	logger *zap.Logger,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		carRepo:     carRepo,
		directory:   directory,
		resolver:    resolver,
		cache:       cache,
		logger:      logger,
	}
}

func (s *profileService) cacheKey(slug string) string {
	return fmt.Sprintf("profile:%s", slug)
}

func (s *profileService) GetBySlug(ctx context.Context, slug string) (*ProfilePage, error) {
	profile, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	cars, err := s.carRepo.List(ctx, repository.CarFilter{UserID: &profile.ID, Limit: profileCarsLimit})
	if err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	owner := map[uuid.UUID]*UserSummary{profile.ID: summarize(profile, s.resolver)}
	page := &ProfilePage{Profile: profile, Cars: make([]CarResponse, 0, len(cars))}
	for i := range cars {
		page.Cars = append(page.Cars, *carResponse(&cars[i], owner, s.resolver))
	}
	page.Profile.AvatarURL = s.resolver.ResolveImageSource(profile.AvatarURL)
	return page, nil
}

func (s *profileService) findBySlug(ctx context.Context, slug string) (*model.Profile, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(slug)); data != nil {
		var cached model.Profile
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	profile, err := s.profileRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if payload, err := json.Marshal(profile); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(slug), payload, profileCacheTTL)
	}
	return profile, nil
}

// Upsert creates or updates the caller's profile. The slug follows the display name
// and gets a short suffix from the user id when another member already holds it.
func (s *profileService) Upsert(ctx context.Context, userID uuid.UUID, in ProfileInput) (*model.Profile, error) {
	name := strings.TrimSpace(in.DisplayName)
	if n := utf8.RuneCountInString(name); n < minDisplayNameLen || n > maxDisplayNameLen {
		return nil, errors.Invalid("Display name must be between 2 and 50 characters")
	}
	if in.Bio != nil && utf8.RuneCountInString(strings.TrimSpace(*in.Bio)) > maxBioLen {
		return nil, errors.Invalid("Bio must be 500 characters or fewer")
	}

	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, fmt.Errorf("get profile: %w", err)
		}
		profile = &model.Profile{ID: userID}
	}
	oldSlug := profile.Slug

	profile.DisplayName = name
	if in.Bio != nil {
		profile.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.AvatarURL != nil {
		profile.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	if in.Email != nil {
		profile.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if profile.Slug, err = s.uniqueSlug(ctx, name, userID); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		if errors.IsDuplicate(err) {
			return nil, errors.Invalid("Profile URL is taken, try another display name")
		}
		return nil, fmt.Errorf("save profile: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(oldSlug), s.cacheKey(profile.Slug))
	return profile, nil
}

func (s *profileService) uniqueSlug(ctx context.Context, name string, userID uuid.UUID) (string, error) {
	base := normalize.Slugify(name)
	if base == "" {
		base = fallbackSlug
	}
	hex := strings.ReplaceAll(userID.String(), "-", "")
	for _, candidate := range []string{base, base + "-" + hex[:6], base + "-" + hex[:12]} {
		taken, err := s.profileRepo.SlugTaken(ctx, candidate, userID)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return base + "-" + hex, nil
}

// AdminList pages through auth accounts when the directory is configured, otherwise
// through profiles.
func (s *profileService) AdminList(ctx context.Context, limit, offset int) ([]AdminUser, error) {
	if limit <= 0 {
		limit = 50
	}
	if s.directory == nil {
		profiles, err := s.profileRepo.List(ctx, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		out := make([]AdminUser, 0, len(profiles))
		for i := range profiles {
			out = append(out, s.adminUser(&profiles[i], nil))
		}
		return out, nil
	}

	users, err := s.directory.ListUsers(ctx, offset/limit+1, limit)
	if err != nil {
		return nil, fmt.Errorf("list auth users: %w", err)
	}
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	profiles, err := s.profileRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}

	out := make([]AdminUser, 0, len(users))
	for i := range users {
		u := &users[i]
		if p, ok := byID[u.ID]; ok {
			out = append(out, s.adminUser(p, u))
			continue
		}
		out = append(out, AdminUser{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt, LastSignInAt: u.LastSignInAt})
	}
	return out, nil
}

func (s *profileService) adminUser(p *model.Profile, u *authadmin.User) AdminUser {
	out := AdminUser{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Slug:        p.Slug,
		AvatarURL:   s.resolver.ResolveImageSource(p.AvatarURL),
		CreatedAt:   p.CreatedAt,
		HasProfile:  true,
	}
	if u != nil {
		out.Email = u.Email
		out.CreatedAt = u.CreatedAt
		out.LastSignInAt = u.LastSignInAt
	}
	return out
}

// AdminDelete removes the auth account, when a directory is configured, and the profile.
func (s *profileService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	if s.directory != nil {
		if err := s.directory.DeleteUser(ctx, id); err != nil && err != authadmin.ErrUserNotFound {
			return fmt.Errorf("delete auth user: %w", err)
		}
	}

	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			if s.directory != nil {
				return nil
			}
			return errors.ErrProfileNotFound
		}
		return fmt.Errorf("get profile: %w", err)
	}
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(profile.Slug))
	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}
