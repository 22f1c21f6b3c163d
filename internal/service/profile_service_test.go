package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cultofdrive/internal/authadmin"
	"cultofdrive/internal/errors"
	"cultofdrive/internal/media"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
)

func newTestProfileService(profiles *MockProfileRepository, cars *MockCarRepository, directory UserDirectory) ProfileService {
	return NewProfileService(profiles, cars, directory, media.NewResolver(newFakeStore()), nil, zap.NewNop())
}

func TestProfileService_Upsert(t *testing.T) {
	userID := uuid.MustParse("0f3c2b1a-9d8e-4c7b-a6f5-e4d3c2b1a098")

	t.Run("creates profile with slug", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
		profiles.On("SlugTaken", mock.Anything, "jose-garcia", userID).Return(false, nil)
		profiles.On("Save", mock.Anything, mock.AnythingOfType("*model.Profile")).Return(nil)

		p, err := newTestProfileService(profiles, nil, nil).Upsert(context.Background(), userID, ProfileInput{
			DisplayName: " José García ",
			Email:       strPtr("Jose@Example.com"),
		})

		require.NoError(t, err)
		assert.Equal(t, userID, p.ID)
		assert.Equal(t, "José García", p.DisplayName)
		assert.Equal(t, "jose-garcia", p.Slug)
		assert.Equal(t, "jose@example.com", p.Email)
	})

	t.Run("taken slug gets a suffix", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("FindByID", mock.Anything, userID).Return(&model.Profile{ID: userID, Slug: "old"}, nil)
		profiles.On("SlugTaken", mock.Anything, "alex", userID).Return(true, nil)
		profiles.On("SlugTaken", mock.Anything, "alex-0f3c2b", userID).Return(false, nil)
		profiles.On("Save", mock.Anything, mock.Anything).Return(nil)

		p, err := newTestProfileService(profiles, nil, nil).Upsert(context.Background(), userID, ProfileInput{DisplayName: "Alex"})

		require.NoError(t, err)
		assert.Equal(t, "alex-0f3c2b", p.Slug)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newTestProfileService(new(MockProfileRepository), nil, nil)

		_, err := svc.Upsert(context.Background(), userID, ProfileInput{DisplayName: "A"})
		assert.EqualError(t, err, "Display name must be between 2 and 50 characters")

		_, err = svc.Upsert(context.Background(), userID, ProfileInput{DisplayName: "Alex", Bio: strPtr(strings.Repeat("b", 501))})
		assert.EqualError(t, err, "Bio must be 500 characters or fewer")
	})

	t.Run("slug race", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)
		profiles.On("SlugTaken", mock.Anything, mock.Anything, userID).Return(false, nil)
		profiles.On("Save", mock.Anything, mock.Anything).Return(errors.ErrDuplicate)

		_, err := newTestProfileService(profiles, nil, nil).Upsert(context.Background(), userID, ProfileInput{DisplayName: "Alex"})

		assert.EqualError(t, err, "Profile URL is taken, try another display name")
	})
}

func TestProfileService_GetBySlug(t *testing.T) {
	userID := uuid.New()
	profiles := new(MockProfileRepository)
	cars := new(MockCarRepository)
	profiles.On("FindBySlug", mock.Anything, "mia").Return(&model.Profile{ID: userID, DisplayName: "Mia", Slug: "mia", AvatarURL: "avatars/mia.png"}, nil)
	profiles.On("FindBySlug", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
	cars.On("List", mock.Anything, repository.CarFilter{UserID: &userID, Limit: profileCarsLimit}).
		Return([]model.Car{{ID: uuid.New(), Model: "E30", UserID: &userID}}, nil)
	svc := newTestProfileService(profiles, cars, nil)

	page, err := svc.GetBySlug(context.Background(), "mia")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/mia.png", page.Profile.AvatarURL)
	require.Len(t, page.Cars, 1)
	assert.Equal(t, "Mia", page.Cars[0].Owner.DisplayName)

	_, err = svc.GetBySlug(context.Background(), "ghost")
	assert.ErrorIs(t, err, errors.ErrProfileNotFound)
}

func TestProfileService_AdminListWithDirectory(t *testing.T) {
	withProfile := uuid.New()
	withoutProfile := uuid.New()
	directory := new(MockUserDirectory)
	directory.On("ListUsers", mock.Anything, 2, 10).Return([]authadmin.User{
		{ID: withProfile, Email: "a@example.com"},
		{ID: withoutProfile, Email: "b@example.com"},
	}, nil)
	profiles := new(MockProfileRepository)
	profiles.On("FindByIDs", mock.Anything, []uuid.UUID{withProfile, withoutProfile}).
		Return([]model.Profile{{ID: withProfile, DisplayName: "Ann", Email: "stale@example.com"}}, nil)

	users, err := newTestProfileService(profiles, nil, directory).AdminList(context.Background(), 10, 10)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.True(t, users[0].HasProfile)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, "Ann", users[0].DisplayName)
	assert.False(t, users[1].HasProfile)
}

func TestProfileService_AdminDelete(t *testing.T) {
	id := uuid.New()

	t.Run("without directory", func(t *testing.T) {
		profiles := new(MockProfileRepository)
		profiles.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		err := newTestProfileService(profiles, nil, nil).AdminDelete(context.Background(), id)

		assert.ErrorIs(t, err, errors.ErrProfileNotFound)
	})

	t.Run("auth user without profile", func(t *testing.T) {
		directory := new(MockUserDirectory)
		directory.On("DeleteUser", mock.Anything, id).Return(nil)
		profiles := new(MockProfileRepository)
		profiles.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		err := newTestProfileService(profiles, nil, directory).AdminDelete(context.Background(), id)

		assert.NoError(t, err)
		directory.AssertExpectations(t)
	})

	t.Run("deletes profile", func(t *testing.T) {
		directory := new(MockUserDirectory)
		directory.On("DeleteUser", mock.Anything, id).Return(authadmin.ErrUserNotFound)
		profiles := new(MockProfileRepository)
		profiles.On("FindByID", mock.Anything, id).Return(&model.Profile{ID: id, Slug: "gone"}, nil)
		profiles.On("Delete", mock.Anything, id).Return(nil)

		err := newTestProfileService(profiles, nil, directory).AdminDelete(context.Background(), id)

		require.NoError(t, err)
		profiles.AssertCalled(t, "Delete", mock.Anything, id)
	})
}
