package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cultofdrive/internal/auth"
	"cultofdrive/internal/service"
)

// ProfileHandler handles member profiles and admin user management.
type ProfileHandler struct {
	svc service.ProfileService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// ProfileRequest updates the acting user's profile.
type ProfileRequest struct {
	UserID string `json:"user_id"`
	service.ProfileInput
}

// AdminUserListResponse lists users for moderators.
type AdminUserListResponse struct {
	Users []service.AdminUser `json:"users"`
}

// GetProfile godoc
// @Summary Public profile by slug
// @Tags profiles
// @Produce json
// @Param slug path string true "Profile slug"
// @Success 200 {object} service.ProfilePage
// @Failure 404 {object} errors.ErrorResponse
// @Router /profiles/{slug} [get]
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	page, err := h.svc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, page)
}

// UpsertProfile godoc
// @Summary Create or update own profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProfileRequest true "Profile"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /profiles [put]
func (h *ProfileHandler) UpsertProfile(c echo.Context) error {
	var req ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	userID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}
	if req.Email == nil {
		if claims := auth.CurrentClaims(c); claims != nil && claims.Email != "" {
			req.Email = &claims.Email
		}
	}

	profile, err := h.svc.Upsert(c.Request().Context(), userID, req.ProfileInput)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// AdminListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security AdminKey
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} AdminUserListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *ProfileHandler) AdminListUsers(c echo.Context) error {
	limit, offset := page(c)
	users, err := h.svc.AdminList(c.Request().Context(), limit, offset)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, AdminUserListResponse{Users: users})
}

// AdminDeleteUser godoc
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security AdminKey
// @Param id path string true "User ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *ProfileHandler) AdminDeleteUser(c echo.Context) error {
	id, err := pathID(c, "id", "user id")
	if err != nil {
		return err
	}
	if err := h.svc.AdminDelete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
