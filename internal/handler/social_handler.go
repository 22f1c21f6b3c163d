package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cultofdrive/internal/service"
)

// SocialHandler serves the social feed.
type SocialHandler struct {
	svc service.SocialService
}

// NewSocialHandler creates a new social handler.
func NewSocialHandler(svc service.SocialService) *SocialHandler {
	return &SocialHandler{svc: svc}
}

// SyncResponse reports how many posts were stored.
type SyncResponse struct {
	Synced int64 `json:"synced"`
}

// Instagram godoc
// @Summary Recent Instagram posts
// @Tags social
// @Produce json
// @Param limit query int false "Number of posts"
// @Success 200 {object} service.SocialFeed
// @Failure 500 {object} errors.ErrorResponse
// @Router /instagram [get]
func (h *SocialHandler) Instagram(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	feed, err := h.svc.Instagram(c.Request().Context(), limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, feed)
}

// SocialPosts godoc
// @Summary Mirrored social posts
// @Tags social
// @Produce json
// @Param limit query int false "Number of posts"
// @Success 200 {object} service.SocialFeed
// @Failure 500 {object} errors.ErrorResponse
// @Router /social-posts [get]
func (h *SocialHandler) SocialPosts(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	feed, err := h.svc.Posts(c.Request().Context(), limit)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, feed)
}

// Sync godoc
// @Summary Pull Instagram posts into the mirror
// @Tags admin
// @Produce json
// @Security AdminKey
// @Success 200 {object} SyncResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/social-posts/sync [post]
func (h *SocialHandler) Sync(c echo.Context) error {
	n, err := h.svc.Sync(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SyncResponse{Synced: n})
}
