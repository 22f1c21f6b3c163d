package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cultofdrive/internal/auth"
	"cultofdrive/internal/normalize"
	"cultofdrive/internal/service"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	svc service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(svc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// MarkAllReadResponse reports how many notifications were marked read.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ListNotifications godoc
// @Summary List own notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Acting user"
// @Param unread query bool false "Only unread"
// @Success 200 {object} service.NotificationList
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID, err := auth.ActingUser(c, c.QueryParam("user_id"))
	if err != nil {
		return fail(err)
	}
	list, err := h.svc.List(c.Request().Context(), userID, normalize.ParseBool(c.QueryParam("unread")))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, list)
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Param request body UserRequest false "Acting user"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := pathID(c, "id", "notification id")
	if err != nil {
		return err
	}
	var req UserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.UserID == "" {
		req.UserID = c.QueryParam("user_id")
	}
	userID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}

	if err := h.svc.MarkRead(c.Request().Context(), id, userID); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// MarkAllRead godoc
// @Summary Mark every notification read
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UserRequest false "Acting user"
// @Success 200 {object} MarkAllReadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	var req UserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	userID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}

	n, err := h.svc.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, MarkAllReadResponse{Updated: n})
}
