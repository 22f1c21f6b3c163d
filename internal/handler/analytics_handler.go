package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cultofdrive/internal/service"
)

// AnalyticsHandler handles view tracking and statistics.
type AnalyticsHandler struct {
	svc service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// TrackViewRequest names the viewed car.
type TrackViewRequest struct {
	CarID string `json:"car_id" validate:"required,uuid"`
}

// TrackViewResponse reports whether the view was counted.
type TrackViewResponse struct {
	Counted bool `json:"counted"`
}

// TrackView godoc
// @Summary Count a car view
// @Description Views from the same IP are counted once per car every 30 minutes.
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body TrackViewRequest true "Viewed car"
// @Success 200 {object} TrackViewResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /analytics/track-view [post]
func (h *AnalyticsHandler) TrackView(c echo.Context) error {
	var req TrackViewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return badRequest("Invalid car id")
	}

	counted, err := h.svc.TrackView(c.Request().Context(), carID, c.RealIP())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, TrackViewResponse{Counted: counted})
}

// CarStats godoc
// @Summary Site or car statistics
// @Description Without car_id returns site-wide counters, with it the counters of one car.
// @Tags analytics
// @Produce json
// @Param car_id query string false "Car ID"
// @Success 200 {object} service.SiteStats
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/stats [get]
func (h *AnalyticsHandler) CarStats(c echo.Context) error {
	ctx := c.Request().Context()
	if v := c.QueryParam("car_id"); v != "" {
		carID, err := uuid.Parse(v)
		if err != nil {
			return badRequest("Invalid car id")
		}
		stats, err := h.svc.CarStats(ctx, carID)
		if err != nil {
			return fail(err)
		}
		return c.JSON(http.StatusOK, stats)
	}

	stats, err := h.svc.SiteStats(ctx)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// Dashboard godoc
// @Summary Admin analytics dashboard
// @Tags admin
// @Produce json
// @Security AdminKey
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/analytics [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, dashboard)
}
