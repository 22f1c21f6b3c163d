package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"cultofdrive/internal/cache"
	"cultofdrive/internal/errors"
	"cultofdrive/internal/instagram"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
)

// Where a social feed came from.
const (
	SourceInstagram = "instagram"
	SourceDatabase  = "database"
	SourceFallback  = "fallback"
)

const (
	socialCacheTTL   = 10 * time.Minute
	defaultFeedLimit = 12
	maxFeedLimit     = 50
	syncFetchLimit   = 50
)

// SocialFeed is a list of posts and where they came from.
type SocialFeed struct {
	Posts  []model.SocialPost `json:"posts"`
	Source string             `json:"source"`
}

// MediaSource fetches recent posts from Instagram.
type MediaSource interface {
	Enabled() bool
	RecentMedia(ctx context.Context, limit int) ([]instagram.Media, error)
}

// SocialService serves the community's social feed.
type SocialService interface {
	// Instagram returns live posts, falling back to the local file.
	Instagram(ctx context.Context, limit int) (*SocialFeed, error)
	// Posts returns the mirrored posts, falling back to the local file.
	Posts(ctx context.Context, limit int) (*SocialFeed, error)
	// Sync pulls recent Instagram posts into the mirror.
	Sync(ctx context.Context) (int64, error)
}

type socialService struct {
	repo         repository.SocialPostRepository
	source       MediaSource
	cache        *cache.Client
	fallbackPath string
	logger       *zap.Logger
}

// NewSocialService creates a new social service.
func NewSocialService(repo repository.SocialPostRepository, source MediaSource, cache *cache.Client, fallbackPath string, logger *zap.Logger) SocialService {
	return &socialService{
		repo:         repo,
		source:       source,
		cache:        cache,
		fallbackPath: fallbackPath,
		logger:       logger,
	}
}

func (s *socialService) cacheKey(limit int) string {
	return fmt.Sprintf("social:instagram:%d", limit)
}

func (s *socialService) Instagram(ctx context.Context, limit int) (*SocialFeed, error) {
	limit = clampFeedLimit(limit)
	if !s.source.Enabled() {
		return s.fallback(limit)
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(limit)); data != nil {
		var cached []model.SocialPost
		if err := json.Unmarshal(data, &cached); err == nil {
			return &SocialFeed{Posts: cached, Source: SourceInstagram}, nil
		}
	}

	media, err := s.source.RecentMedia(ctx, limit)
	if err != nil {
		s.logger.Warn("instagram fetch failed, serving fallback", zap.Error(err))
		return s.fallback(limit)
	}
	posts := postsFromMedia(media)
	if payload, err := json.Marshal(posts); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(limit), payload, socialCacheTTL)
	}
	return &SocialFeed{Posts: posts, Source: SourceInstagram}, nil
}

func (s *socialService) Posts(ctx context.Context, limit int) (*SocialFeed, error) {
	limit = clampFeedLimit(limit)
	posts, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.Warn("social posts query failed, serving fallback", zap.Error(err))
		return s.fallback(limit)
	}
	if len(posts) == 0 {
		return s.fallback(limit)
	}
	return &SocialFeed{Posts: posts, Source: SourceDatabase}, nil
}

func (s *socialService) Sync(ctx context.Context) (int64, error) {
	if !s.source.Enabled() {
		return 0, errors.Invalid("Instagram is not configured")
	}
	media, err := s.source.RecentMedia(ctx, syncFetchLimit)
	if err != nil {
		return 0, fmt.Errorf("fetch instagram media: %w", err)
	}
	n, err := s.repo.Upsert(ctx, postsFromMedia(media))
	if err != nil {
		return 0, fmt.Errorf("store social posts: %w", err)
	}
	s.logger.Info("social posts synced", zap.Int64("count", n))
	return n, nil
}

func (s *socialService) fallback(limit int) (*SocialFeed, error) {
	posts, err := LoadSocialPostsFile(s.fallbackPath)
	if err != nil {
		return nil, err
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return &SocialFeed{Posts: posts, Source: SourceFallback}, nil
}

// LoadSocialPostsFile reads a JSON array of posts. A missing file is an empty feed.
func LoadSocialPostsFile(path string) ([]model.SocialPost, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.SocialPost{}, nil
		}
		return nil, fmt.Errorf("read social fallback: %w", err)
	}
	var posts []model.SocialPost
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("parse social fallback: %w", err)
	}
	return posts, nil
}

func postsFromMedia(media []instagram.Media) []model.SocialPost {
	posts := make([]model.SocialPost, 0, len(media))
	for _, m := range media {
		posts = append(posts, model.SocialPost{
			ExternalID: m.ID,
			Username:   m.Username,
			Content:    m.Caption,
			ImageURL:   m.ImageURL(),
			LikeCount:  m.LikeCount,
			URL:        m.Permalink,
			CreatedAt:  m.PostedAt(),
		})
	}
	return posts
}

func clampFeedLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultFeedLimit
	case limit > maxFeedLimit:
		return maxFeedLimit
	}
	return limit
}
