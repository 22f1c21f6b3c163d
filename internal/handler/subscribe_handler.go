package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cultofdrive/internal/service"
)

// SubscribeHandler handles newsletter signups.
type SubscribeHandler struct {
	svc service.SubscribeService
}

// NewSubscribeHandler creates a new subscribe handler.
func NewSubscribeHandler(svc service.SubscribeService) *SubscribeHandler {
	return &SubscribeHandler{svc: svc}
}

// SubscribeRequest is a newsletter signup.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// MessageResponse is a short confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// Subscribe godoc
// @Summary Subscribe to the newsletter
// @Description Limited to 3 requests per minute per IP.
// @Tags newsletter
// @Accept json
// @Produce json
// @Param request body SubscribeRequest true "Email"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /subscribe [post]
func (h *SubscribeHandler) Subscribe(c echo.Context) error {
	var req SubscribeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.Subscribe(c.Request().Context(), req.Email); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, MessageResponse{Message: "Subscribed"})
}
