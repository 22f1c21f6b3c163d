package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
)

const notificationsPageLimit = 50

// NotificationList is a page of notifications plus the unread total.
type NotificationList struct {
	Notifications []model.Notification `json:"notifications"`
	Unread        int64                `json:"unread"`
}

// NotificationService reads and acknowledges notifications.
type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*NotificationList, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*NotificationList, error) {
	items, err := s.repo.ListByUser(ctx, userID, unreadOnly, notificationsPageLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}
	if items == nil {
		items = []model.Notification{}
	}
	return &NotificationList{Notifications: items, Unread: unread}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	ok, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if !ok {
		return errors.ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return n, nil
}
