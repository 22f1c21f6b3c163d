package service

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cultofdrive/internal/cache"
	"cultofdrive/internal/errors"
	"cultofdrive/internal/instagram"
	"cultofdrive/internal/model"
)

const fallbackJSON = `[
  {"external_id": "a", "username": "cultofdrive", "content": "E30 at dawn", "like_count": 10},
  {"external_id": "b", "username": "cultofdrive", "content": "E46 on track", "like_count": 7}
]`

func writeFallback(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "social_posts.json")
	require.NoError(t, os.WriteFile(path, []byte(fallbackJSON), 0600))
	return path
}

func TestSocialService_InstagramFallsBackWhenDisabled(t *testing.T) {
	source := new(MockMediaSource)
	source.On("Enabled").Return(false)
	svc := NewSocialService(new(MockSocialPostRepository), source, nil, writeFallback(t), zap.NewNop())

	feed, err := svc.Instagram(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, feed.Source)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "E30 at dawn", feed.Posts[0].Content)
	source.AssertNotCalled(t, "RecentMedia", mock.Anything, mock.Anything)
}

func TestSocialService_InstagramLiveAndCached(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	defer c.Close()

	source := new(MockMediaSource)
	source.On("Enabled").Return(true)
	source.On("RecentMedia", mock.Anything, defaultFeedLimit).Return([]instagram.Media{{
		ID:           "17890",
		Caption:      "M3 CSL",
		MediaType:    "VIDEO",
		MediaURL:     "https://cdn.example.com/video.mp4",
		ThumbnailURL: "https://cdn.example.com/thumb.jpg",
		Timestamp:    "2024-03-01T18:10:00+0000",
	}}, nil).Once()
	svc := NewSocialService(new(MockSocialPostRepository), source, c, "", zap.NewNop())

	feed, err := svc.Instagram(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, SourceInstagram, feed.Source)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "https://cdn.example.com/thumb.jpg", feed.Posts[0].ImageURL)
	assert.Equal(t, 2024, feed.Posts[0].CreatedAt.Year())

	again, err := svc.Instagram(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, feed.Posts[0].ExternalID, again.Posts[0].ExternalID)
	source.AssertNumberOfCalls(t, "RecentMedia", 1)
}

func TestSocialService_InstagramErrorServesFallback(t *testing.T) {
	source := new(MockMediaSource)
	source.On("Enabled").Return(true)
	source.On("RecentMedia", mock.Anything, 5).Return(nil, stderrors.New("token expired"))
	svc := NewSocialService(new(MockSocialPostRepository), source, nil, writeFallback(t), zap.NewNop())

	feed, err := svc.Instagram(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, SourceFallback, feed.Source)
	assert.Len(t, feed.Posts, 2)
}

func TestSocialService_Posts(t *testing.T) {
	t.Run("from database", func(t *testing.T) {
		repo := new(MockSocialPostRepository)
		repo.On("List", mock.Anything, maxFeedLimit).Return([]model.SocialPost{{ExternalID: "x"}}, nil)
		svc := NewSocialService(repo, new(MockMediaSource), nil, "", zap.NewNop())

		feed, err := svc.Posts(context.Background(), 500)

		require.NoError(t, err)
		assert.Equal(t, SourceDatabase, feed.Source)
	})

	t.Run("empty table uses fallback", func(t *testing.T) {
		repo := new(MockSocialPostRepository)
		repo.On("List", mock.Anything, defaultFeedLimit).Return([]model.SocialPost{}, nil)
		svc := NewSocialService(repo, new(MockMediaSource), nil, writeFallback(t), zap.NewNop())

		feed, err := svc.Posts(context.Background(), 0)

		require.NoError(t, err)
		assert.Equal(t, SourceFallback, feed.Source)
		assert.Len(t, feed.Posts, 2)
	})

	t.Run("missing fallback file is an empty feed", func(t *testing.T) {
		repo := new(MockSocialPostRepository)
		repo.On("List", mock.Anything, defaultFeedLimit).Return(nil, stderrors.New("relation does not exist"))
		svc := NewSocialService(repo, new(MockMediaSource), nil, filepath.Join(t.TempDir(), "none.json"), zap.NewNop())

		feed, err := svc.Posts(context.Background(), 0)

		require.NoError(t, err)
		assert.Empty(t, feed.Posts)
	})
}

func TestSocialService_Sync(t *testing.T) {
	disabled := new(MockMediaSource)
	disabled.On("Enabled").Return(false)
	_, err := NewSocialService(new(MockSocialPostRepository), disabled, nil, "", zap.NewNop()).Sync(context.Background())
	assert.True(t, errors.IsValidation(err))
	assert.EqualError(t, err, "Instagram is not configured")

	source := new(MockMediaSource)
	source.On("Enabled").Return(true)
	source.On("RecentMedia", mock.Anything, syncFetchLimit).Return([]instagram.Media{{ID: "1"}, {ID: "2"}}, nil)
	repo := new(MockSocialPostRepository)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(posts []model.SocialPost) bool {
		return len(posts) == 2 && posts[0].ExternalID == "1"
	})).Return(int64(2), nil)

	n, err := NewSocialService(repo, source, nil, "", zap.NewNop()).Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
