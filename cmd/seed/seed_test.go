package main

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
	"cultofdrive/internal/service"
)

type mockCarService struct {
	service.CarService
	mock.Mock
}

func (m *mockCarService) ImportCar(ctx context.Context, ownerID *uuid.UUID, in service.CarInput) (*service.CarResponse, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CarResponse), args.Error(1)
}

type mockSocialPostRepository struct {
	mock.Mock
}

func (m *mockSocialPostRepository) List(ctx context.Context, limit int) ([]model.SocialPost, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.SocialPost), args.Error(1)
}

func (m *mockSocialPostRepository) Upsert(ctx context.Context, posts []model.SocialPost) (int64, error) {
	args := m.Called(ctx, posts)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.SocialPostRepository = (*mockSocialPostRepository)(nil)

func modelIs(name string) interface{} {
	return mock.MatchedBy(func(in service.CarInput) bool {
		return in.Model != nil && *in.Model == name
	})
}

func TestCommands(t *testing.T) {
	for _, cmd := range []struct {
		use  string
		file string
	}{
		{use: "cars", file: "data/cars.json"},
		{use: "social-posts", file: "data/social_posts.json"},
	} {
		t.Run(cmd.use, func(t *testing.T) {
			c := carsCmd()
			if cmd.use == "social-posts" {
				c = socialPostsCmd()
			}
			assert.Equal(t, cmd.use, c.Use)
			assert.NotEmpty(t, c.Short)

			flag := c.Flags().Lookup("file")
			require.NotNil(t, flag)
			assert.Equal(t, "f", flag.Shorthand)
			assert.Equal(t, cmd.file, flag.DefValue)
		})
	}

	assert.Equal(t, "migrate", migrateCmd().Use)
}

func TestSeedCars(t *testing.T) {
	owner := uuid.New()
	input := `[
		{"user_id": "` + owner.String() + `", "model": "E30 M3", "year": "1990", "is_featured": "true"},
		{"model": "E39 M5", "year": 2001},
		{"user_id": "not-a-uuid", "model": "Z3"},
		{"year": 1999}
	]`

	cars := new(mockCarService)
	cars.On("ImportCar", mock.Anything, &owner, modelIs("E30 M3")).Return(&service.CarResponse{}, nil)
	cars.On("ImportCar", mock.Anything, (*uuid.UUID)(nil), modelIs("E39 M5")).Return(&service.CarResponse{}, nil)
	cars.On("ImportCar", mock.Anything, (*uuid.UUID)(nil), mock.Anything).Return(nil, errors.Invalid("Model is required"))

	created, skipped, err := seedCars(context.Background(), cars, strings.NewReader(input), zap.NewNop())

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, skipped)
	cars.AssertNumberOfCalls(t, "ImportCar", 3)
}

func TestSeedCars_StopsOnStorageError(t *testing.T) {
	cars := new(mockCarService)
	cars.On("ImportCar", mock.Anything, mock.Anything, mock.Anything).Return(nil, stderrors.New("connection reset"))

	created, _, err := seedCars(context.Background(), cars, strings.NewReader(`[{"model":"M2"},{"model":"M4"}]`), zap.NewNop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "import car 0")
	assert.Equal(t, 0, created)
	cars.AssertNumberOfCalls(t, "ImportCar", 1)
}

func TestSeedCars_BadJSON(t *testing.T) {
	_, _, err := seedCars(context.Background(), new(mockCarService), strings.NewReader(`{"model":`), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse cars")
}

func TestSeedSocialPosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"external_id":"a","content":"E28 M5"},{"external_id":"b","content":"E9 CSL"}]`), 0600))

	t.Run("upserts every post", func(t *testing.T) {
		repo := new(mockSocialPostRepository)
		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(posts []model.SocialPost) bool {
			return len(posts) == 2 && posts[0].ExternalID == "a"
		})).Return(int64(2), nil)

		n, err := seedSocialPosts(context.Background(), repo, path)

		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		repo.AssertExpectations(t)
	})

	t.Run("missing file is a no-op", func(t *testing.T) {
		repo := new(mockSocialPostRepository)

		n, err := seedSocialPosts(context.Background(), repo, filepath.Join(t.TempDir(), "missing.json"))

		require.NoError(t, err)
		assert.Zero(t, n)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("upsert failure", func(t *testing.T) {
		repo := new(mockSocialPostRepository)
		repo.On("Upsert", mock.Anything, mock.Anything).Return(int64(0), stderrors.New("deadlock"))

		_, err := seedSocialPosts(context.Background(), repo, path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "deadlock")
	})
}
