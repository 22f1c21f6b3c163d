package service

import (
	"context"
	"fmt"
	"strings"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
)

// SubscribeService captures newsletter signups.
type SubscribeService interface {
	Subscribe(ctx context.Context, email string) error
}

type subscribeService struct {
	repo repository.SubscriberRepository
}

// NewSubscribeService creates a new subscribe service.
func NewSubscribeService(repo repository.SubscriberRepository) SubscribeService {
	return &subscribeService{repo: repo}
}

// Subscribe stores the lower-cased email. A repeat signup is a conflict.
func (s *subscribeService) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errors.Invalid("Email is required")
	}
	if err := s.repo.Create(ctx, &model.Subscriber{Email: email}); err != nil {
		if errors.IsDuplicate(err) {
			return errors.ErrAlreadySubscribed
		}
		return fmt.Errorf("subscribe: %w", err)
	}
	return nil
}
