package handler

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/repository"
	"cultofdrive/internal/service"
)

type MockCarService struct {
	mock.Mock
}

func (m *MockCarService) ListCars(ctx context.Context, filter repository.CarFilter) ([]service.CarResponse, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]service.CarResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockCarService) GetCar(ctx context.Context, id uuid.UUID) (*service.CarResponse, error) {
	args := m.Called(ctx, id)
	return carResult(args)
}

func (m *MockCarService) CreateCar(ctx context.Context, ownerID uuid.UUID, in service.CarInput) (*service.CarResponse, error) {
	args := m.Called(ctx, ownerID, in)
	return carResult(args)
}

func (m *MockCarService) ImportCar(ctx context.Context, ownerID *uuid.UUID, in service.CarInput) (*service.CarResponse, error) {
	args := m.Called(ctx, ownerID, in)
	return carResult(args)
}

func (m *MockCarService) UpdateCar(ctx context.Context, id, actorID uuid.UUID, in service.CarInput) (*service.CarResponse, error) {
	args := m.Called(ctx, id, actorID, in)
	return carResult(args)
}

func (m *MockCarService) DeleteCar(ctx context.Context, id, actorID uuid.UUID) error {
	return m.Called(ctx, id, actorID).Error(0)
}

func (m *MockCarService) AdminUpdateCar(ctx context.Context, id uuid.UUID, in service.CarInput) (*service.CarResponse, error) {
	args := m.Called(ctx, id, in)
	return carResult(args)
}

func (m *MockCarService) AdminDeleteCar(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func carResult(args mock.Arguments) (*service.CarResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CarResponse), args.Error(1)
}

type MockInteractionService struct {
	mock.Mock
}

func (m *MockInteractionService) FavoriteStatus(ctx context.Context, carID uuid.UUID, userID *uuid.UUID) (*service.ReactionStatus, error) {
	return reactionResult(m.Called(ctx, carID, userID))
}

func (m *MockInteractionService) AddFavorite(ctx context.Context, carID, userID uuid.UUID) (*service.ReactionStatus, error) {
	return reactionResult(m.Called(ctx, carID, userID))
}

func (m *MockInteractionService) RemoveFavorite(ctx context.Context, carID, userID uuid.UUID) (*service.ReactionStatus, error) {
	return reactionResult(m.Called(ctx, carID, userID))
}

func (m *MockInteractionService) LikeStatus(ctx context.Context, carID uuid.UUID, userID *uuid.UUID) (*service.ReactionStatus, error) {
	return reactionResult(m.Called(ctx, carID, userID))
}

func (m *MockInteractionService) AddLike(ctx context.Context, carID, userID uuid.UUID) (*service.ReactionStatus, error) {
	return reactionResult(m.Called(ctx, carID, userID))
}

func (m *MockInteractionService) RemoveLike(ctx context.Context, carID, userID uuid.UUID) (*service.ReactionStatus, error) {
	return reactionResult(m.Called(ctx, carID, userID))
}

func (m *MockInteractionService) ListComments(ctx context.Context, carID uuid.UUID) ([]service.CommentResponse, error) {
	args := m.Called(ctx, carID)
	return args.Get(0).([]service.CommentResponse), args.Error(1)
}

func (m *MockInteractionService) AddComment(ctx context.Context, carID, userID uuid.UUID, body string) (*service.CommentResponse, error) {
	args := m.Called(ctx, carID, userID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CommentResponse), args.Error(1)
}

func (m *MockInteractionService) DeleteComment(ctx context.Context, carID, commentID, userID uuid.UUID) error {
	return m.Called(ctx, carID, commentID, userID).Error(0)
}

func reactionResult(args mock.Arguments) (*service.ReactionStatus, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReactionStatus), args.Error(1)
}

type MockSubscribeService struct {
	mock.Mock
}

func (m *MockSubscribeService) Subscribe(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

// newContext builds a request context with the JSON validator installed.
func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func assertHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, stderrors.As(err, &he), "expected echo.HTTPError, got %v", err)
	assert.Equal(t, code, he.Code)
	assert.Equal(t, errors.ErrorResponse{Error: message}, he.Message)
}
