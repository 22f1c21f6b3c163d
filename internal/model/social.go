package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SocialPost is a cached copy of a post from the community's Instagram account.
type SocialPost struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ExternalID string    `json:"external_id" gorm:"size:64;uniqueIndex"`
	Username   string    `json:"username" gorm:"size:100"`
	Content    string    `json:"content" gorm:"type:text"`
	ImageURL   string    `json:"image_url" gorm:"type:text"`
	LikeCount  int       `json:"like_count"`
	URL        string    `json:"url" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (p *SocialPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Subscriber is an email captured by the newsletter form.
type Subscriber struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
