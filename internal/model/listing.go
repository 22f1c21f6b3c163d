package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListingType distinguishes whole cars from parts.
type ListingType string

const (
	ListingTypeCar  ListingType = "car"
	ListingTypePart ListingType = "part"
)

// Valid reports whether t is a known listing type.
func (t ListingType) Valid() bool {
	return t == ListingTypeCar || t == ListingTypePart
}

// ListingStatus represents the lifecycle state of a marketplace listing.
type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "active"
	ListingStatusSold    ListingStatus = "sold"
	ListingStatusExpired ListingStatus = "expired"
	ListingStatusRemoved ListingStatus = "removed"
)

// Valid reports whether s is a known listing status.
func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusActive, ListingStatusSold, ListingStatusExpired, ListingStatusRemoved:
		return true
	}
	return false
}

// MarketplaceListing is a car or part offered for sale.
type MarketplaceListing struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	ListingType  ListingType     `json:"listing_type" gorm:"type:varchar(10);not null;index"`
	Title        string          `json:"title" gorm:"size:120;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Price        decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null;default:0"`
	Currency     string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Location     string          `json:"location" gorm:"size:120"`
	ContactEmail string          `json:"contact_email,omitempty" gorm:"size:255"`
	ContactPhone string          `json:"contact_phone,omitempty" gorm:"size:40"`
	ImageURL     string          `json:"image_url" gorm:"type:text"`
	Status       ListingStatus   `json:"status" gorm:"type:varchar(10);not null;default:'active';index"`
	SellerID     uuid.UUID       `json:"seller_id" gorm:"type:uuid;not null;index"`
	CarID        *uuid.UUID      `json:"car_id,omitempty" gorm:"type:uuid"`
	Views        int64           `json:"views" gorm:"not null;default:0"`
	CreatedAt    time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (l *MarketplaceListing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
