package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public face of an auth user. ID is the auth-provided user id.
type Profile struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email       string    `json:"email,omitempty" gorm:"size:255;index"`
	DisplayName string    `json:"display_name" gorm:"size:100"`
	Slug        string    `json:"slug" gorm:"size:120;uniqueIndex"`
	AvatarURL   string    `json:"avatar_url" gorm:"type:text"`
	Bio         string    `json:"bio" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`
}
