package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cultofdrive/internal/model"
	"cultofdrive/internal/service"
)

// ReportHandler handles content reports.
type ReportHandler struct {
	svc service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// ReportStatusRequest changes a report's status.
type ReportStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ReportListResponse lists reports.
type ReportListResponse struct {
	Reports []model.Report `json:"reports"`
}

// CreateReport godoc
// @Summary Report content
// @Tags reports
// @Accept json
// @Produce json
// @Param request body service.ReportInput true "Report"
// @Success 201 {object} model.Report
// @Failure 400 {object} errors.ErrorResponse
// @Router /reports [post]
func (h *ReportHandler) CreateReport(c echo.Context) error {
	var req service.ReportInput
	if err := bind(c, &req); err != nil {
		return err
	}
	report, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, report)
}

// AdminListReports godoc
// @Summary List reports
// @Tags admin
// @Produce json
// @Security AdminKey
// @Param status query string false "pending or resolved"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} ReportListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/reports [get]
func (h *ReportHandler) AdminListReports(c echo.Context) error {
	limit, offset := page(c)
	reports, err := h.svc.List(c.Request().Context(), c.QueryParam("status"), limit, offset)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, ReportListResponse{Reports: reports})
}

// AdminUpdateReport godoc
// @Summary Resolve or reopen a report
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path string true "Report ID"
// @Param request body ReportStatusRequest true "New status"
// @Success 200 {object} model.Report
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/reports/{id} [patch]
func (h *ReportHandler) AdminUpdateReport(c echo.Context) error {
	id, err := pathID(c, "id", "report id")
	if err != nil {
		return err
	}
	var req ReportStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	report, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, report)
}
