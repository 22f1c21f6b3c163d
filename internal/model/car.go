package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Car is a member's car as shown in the gallery.
type Car struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Model       string         `json:"model" gorm:"size:100;not null;index"`
	Year        *int           `json:"year,omitempty"`
	UserID      *uuid.UUID     `json:"user_id,omitempty" gorm:"type:uuid;index"`
	ImagePath   string         `json:"image_path" gorm:"type:text"`
	Description string         `json:"description" gorm:"type:text"`
	Specs       pq.StringArray `json:"specs" gorm:"type:text[]"`
	Tags        pq.StringArray `json:"tags" gorm:"type:text[]"`
	IsFeatured  bool           `json:"is_featured" gorm:"default:false;index"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// OwnedBy reports whether the car belongs to userID.
func (c *Car) OwnedBy(userID uuid.UUID) bool {
	return c.UserID != nil && *c.UserID == userID
}

// CarView records one counted view of a car.
type CarView struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CarID     uuid.UUID `json:"car_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (v *CarView) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
