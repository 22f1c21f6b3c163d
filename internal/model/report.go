package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportStatus represents the moderation state of a report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
)

// Report flags a piece of content for moderators.
type Report struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	ContentType string       `json:"content_type" gorm:"size:20;not null;index"`
	ContentID   string       `json:"content_id" gorm:"size:64;not null;index"`
	Reason      string       `json:"reason" gorm:"size:200;not null"`
	Description string       `json:"description" gorm:"type:text"`
	Status      ReportStatus `json:"status" gorm:"type:varchar(10);not null;default:'pending';index"`
	CreatedAt   time.Time    `json:"created_at"`
	ResolvedAt  *time.Time   `json:"resolved_at,omitempty"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
