package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType identifies what triggered a notification.
type NotificationType string

const (
	NotificationFavorite NotificationType = "favorite"
	NotificationComment  NotificationType = "comment"
)

// Notification tells a car owner that someone interacted with their car.
type Notification struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index"`
	Type      NotificationType `json:"type" gorm:"type:varchar(20);not null"`
	CarID     uuid.UUID        `json:"car_id" gorm:"type:uuid;not null"`
	ActorID   uuid.UUID        `json:"actor_id" gorm:"type:uuid;not null"`
	Message   string           `json:"message" gorm:"type:text"`
	Read      bool             `json:"read" gorm:"column:is_read;default:false;index"`
	CreatedAt time.Time        `json:"created_at" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
