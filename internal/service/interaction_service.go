package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/media"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
)

const (
	maxCommentLen     = 1000
	commentsPageLimit = 200
)

// ReactionStatus is the state of a favorite or like for one car.
type ReactionStatus struct {
	Count  int64
	Active bool
}

// CommentResponse is a comment with its author's public identity.
type CommentResponse struct {
	model.Comment
	Author *UserSummary `json:"author,omitempty"`
}

// InteractionService handles favorites, likes and comments on cars.
type InteractionService interface {
	FavoriteStatus(ctx context.Context, carID uuid.UUID, userID *uuid.UUID) (*ReactionStatus, error)
	AddFavorite(ctx context.Context, carID, userID uuid.UUID) (*ReactionStatus, error)
	RemoveFavorite(ctx context.Context, carID, userID uuid.UUID) (*ReactionStatus, error)
	LikeStatus(ctx context.Context, carID uuid.UUID, userID *uuid.UUID) (*ReactionStatus, error)
	AddLike(ctx context.Context, carID, userID uuid.UUID) (*ReactionStatus, error)
	RemoveLike(ctx context.Context, carID, userID uuid.UUID) (*ReactionStatus, error)
	ListComments(ctx context.Context, carID uuid.UUID) ([]CommentResponse, error)
	AddComment(ctx context.Context, carID, userID uuid.UUID, body string) (*CommentResponse, error)
	DeleteComment(ctx context.Context, carID, commentID, userID uuid.UUID) error
}

type interactionService struct {
	carRepo          repository.CarRepository
	favoriteRepo     repository.ReactionRepository
	likeRepo         repository.ReactionRepository
	commentRepo      repository.CommentRepository
	notificationRepo repository.NotificationRepository
	profileRepo      repository.ProfileRepository
	resolver         *media.Resolver
	logger           *zap.Logger
}

// NewInteractionService creates a new interaction service.
func NewInteractionService(
	carRepo repository.CarRepository,
	favoriteRepo repository.ReactionRepository,
	likeRepo repository.ReactionRepository,
	commentRepo repository.CommentRepository,
	notificationRepo repository.NotificationRepository,
	profileRepo repository.ProfileRepository,
	resolver *media.Resolver,
	logger *zap.Logger,
) InteractionService {
	return &interactionService{
		carRepo:          carRepo,
		favoriteRepo:     favoriteRepo,
		likeRepo:         likeRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		resolver:         resolver,
		logger:           logger,
	}
}

func (s *interactionService) FavoriteStatus(ctx context.Context, carID uuid.UUID, userID *uuid.UUID) (*ReactionStatus, error) {
	return s.status(ctx, s.favoriteRepo, carID, userID)
}

// AddFavorite favorites a car and lets its owner know.
func (s *interactionService) AddFavorite(ctx context.Context, carID, userID uuid.UUID) (*ReactionStatus, error) {
	car, err := s.add(ctx, s.favoriteRepo, carID, userID, errors.ErrAlreadyFavorited)
	if err != nil {
		return nil, err
	}
	s.notifyOwner(ctx, car, userID, model.NotificationFavorite, "%s favorited your %s")
	return s.status(ctx, s.favoriteRepo, carID, &userID)
}

func (s *interactionService) RemoveFavorite(ctx context.Context, carID, userID uuid.UUID) (*ReactionStatus, error) {
	if _, err := s.favoriteRepo.Remove(ctx, carID, userID); err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}
	return s.status(ctx, s.favoriteRepo, carID, &userID)
}

func (s *interactionService) LikeStatus(ctx context.Context, carID uuid.UUID, userID *uuid.UUID) (*ReactionStatus, error) {
	return s.status(ctx, s.likeRepo, carID, userID)
}

func (s *interactionService) AddLike(ctx context.Context, carID, userID uuid.UUID) (*ReactionStatus, error) {
	if _, err := s.add(ctx, s.likeRepo, carID, userID, errors.ErrAlreadyLiked); err != nil {
		return nil, err
	}
	return s.status(ctx, s.likeRepo, carID, &userID)
}

func (s *interactionService) RemoveLike(ctx context.Context, carID, userID uuid.UUID) (*ReactionStatus, error) {
	if _, err := s.likeRepo.Remove(ctx, carID, userID); err != nil {
		return nil, fmt.Errorf("remove like: %w", err)
	}
	return s.status(ctx, s.likeRepo, carID, &userID)
}

// ListComments returns a car's comments oldest first with authors attached.
func (s *interactionService) ListComments(ctx context.Context, carID uuid.UUID) ([]CommentResponse, error) {
	if _, err := s.car(ctx, carID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByCar(ctx, carID, commentsPageLimit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	authors, err := lookupPeople(ctx, s.profileRepo, s.resolver, ids)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}

	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentResponse{Comment: c, Author: authors[c.UserID]})
	}
	return out, nil
}

// AddComment posts a comment and lets the car's owner know.
func (s *interactionService) AddComment(ctx context.Context, carID, userID uuid.UUID, body string) (*CommentResponse, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, errors.Invalid("Comment cannot be empty")
	}
	if utf8.RuneCountInString(body) > maxCommentLen {
		return nil, errors.Invalid("Comment must be 1000 characters or fewer")
	}

	car, err := s.car(ctx, carID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{CarID: carID, UserID: userID, Body: body}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	s.notifyOwner(ctx, car, userID, model.NotificationComment, "%s commented on your %s")

	authors, err := lookupPeople(ctx, s.profileRepo, s.resolver, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}
	return &CommentResponse{Comment: *comment, Author: authors[userID]}, nil
}

// DeleteComment deletes a comment written by userID on the given car.
func (s *interactionService) DeleteComment(ctx context.Context, carID, commentID, userID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.ErrCommentNotFound
		}
		return fmt.Errorf("get comment: %w", err)
	}
	if comment.CarID != carID {
		return errors.ErrCommentNotFound
	}
	if comment.UserID != userID {
		return errors.ErrUnauthorized
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *interactionService) car(ctx context.Context, carID uuid.UUID) (*model.Car, error) {
	car, err := s.carRepo.FindByID(ctx, carID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.ErrCarNotFound
		}
		return nil, fmt.Errorf("get car: %w", err)
	}
	return car, nil
}

func (s *interactionService) add(ctx context.Context, repo repository.ReactionRepository, carID, userID uuid.UUID, dup error) (*model.Car, error) {
	car, err := s.car(ctx, carID)
	if err != nil {
		return nil, err
	}
	if err := repo.Add(ctx, carID, userID); err != nil {
		if errors.IsDuplicate(err) {
			return nil, dup
		}
		return nil, fmt.Errorf("add reaction: %w", err)
	}
	return car, nil
}

func (s *interactionService) status(ctx context.Context, repo repository.ReactionRepository, carID uuid.UUID, userID *uuid.UUID) (*ReactionStatus, error) {
	count, err := repo.Count(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}
	status := &ReactionStatus{Count: count}
	if userID != nil {
		if status.Active, err = repo.Exists(ctx, carID, *userID); err != nil {
			return nil, fmt.Errorf("check reaction: %w", err)
		}
	}
	return status, nil
}

// notifyOwner is best effort. A failed notification never fails the interaction.
func (s *interactionService) notifyOwner(ctx context.Context, car *model.Car, actorID uuid.UUID, kind model.NotificationType, format string) {
	if car.UserID == nil || *car.UserID == actorID {
		return
	}
	people, err := lookupPeople(ctx, s.profileRepo, s.resolver, []uuid.UUID{actorID})
	if err != nil {
		s.logger.Warn("load notification actor", zap.Error(err))
	}

	n := &model.Notification{
		UserID:  *car.UserID,
		Type:    kind,
		CarID:   car.ID,
		ActorID: actorID,
		Message: fmt.Sprintf(format, displayName(people, actorID), car.Model),
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Warn("create notification",
			zap.String("car_id", car.ID.String()),
			zap.String("type", string(kind)),
			zap.Error(err),
		)
	}
}
