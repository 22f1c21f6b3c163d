package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"cultofdrive/internal/errors"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
)

// ReportInput is a moderation report filed by a visitor.
type ReportInput struct {
	ContentType string `json:"content_type" validate:"required,oneof=car listing comment user"`
	ContentID   string `json:"content_id" validate:"required,max=64"`
	Reason      string `json:"reason" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// ReportService files and moderates reports.
type ReportService interface {
	Create(ctx context.Context, in ReportInput) (*model.Report, error)
	List(ctx context.Context, status string, limit, offset int) ([]model.Report, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Report, error)
}

type reportService struct {
	repo repository.ReportRepository
	now  func() time.Time
}

// NewReportService creates a new report service.
func NewReportService(repo repository.ReportRepository) ReportService {
	return &reportService{repo: repo, now: time.Now}
}

func (s *reportService) Create(ctx context.Context, in ReportInput) (*model.Report, error) {
	report := &model.Report{
		ContentType: strings.TrimSpace(in.ContentType),
		ContentID:   strings.TrimSpace(in.ContentID),
		Reason:      strings.TrimSpace(in.Reason),
		Description: strings.TrimSpace(in.Description),
		Status:      model.ReportStatusPending,
	}
	if report.Reason == "" {
		return nil, errors.Invalid("Reason is required")
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return report, nil
}

func (s *reportService) List(ctx context.Context, status string, limit, offset int) ([]model.Report, error) {
	st, err := parseReportStatus(status, true)
	if err != nil {
		return nil, err
	}
	reports, err := s.repo.List(ctx, st, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// UpdateStatus moves a report between pending and resolved, stamping the resolution time.
func (s *reportService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Report, error) {
	st, err := parseReportStatus(status, false)
	if err != nil {
		return nil, err
	}
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.ErrReportNotFound
		}
		return nil, fmt.Errorf("get report: %w", err)
	}

	report.Status = st
	if st == model.ReportStatusResolved {
		now := s.now().UTC()
		report.ResolvedAt = &now
	} else {
		report.ResolvedAt = nil
	}
	if err := s.repo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}
	return report, nil
}

func parseReportStatus(status string, allowEmpty bool) (model.ReportStatus, error) {
	st := model.ReportStatus(strings.ToLower(strings.TrimSpace(status)))
	switch {
	case st == "" && allowEmpty:
		return st, nil
	case st == model.ReportStatusPending, st == model.ReportStatusResolved:
		return st, nil
	}
	return "", errors.Invalid("Invalid status")
}
