package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cultofdrive/internal/auth"
	"cultofdrive/internal/model"
	"cultofdrive/internal/repository"
	"cultofdrive/internal/service"
)

// ListingHandler handles marketplace endpoints.
type ListingHandler struct {
	svc service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(svc service.ListingService) *ListingHandler {
	return &ListingHandler{svc: svc}
}

// ListingRequest is a listing payload plus the acting user.
type ListingRequest struct {
	UserID string `json:"user_id"`
	service.ListingInput
}

// ListingListResponse is a page of listings.
type ListingListResponse struct {
	Listings []service.ListingResponse `json:"listings"`
}

// ListListings godoc
// @Summary Browse the marketplace
// @Tags marketplace
// @Produce json
// @Param type query string false "car or part"
// @Param status query string false "Listing status, default active"
// @Param q query string false "Search in title and description"
// @Param seller_id query string false "Seller ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} ListingListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /marketplace [get]
func (h *ListingHandler) ListListings(c echo.Context) error {
	filter, err := listingFilter(c, model.ListingStatusActive)
	if err != nil {
		return err
	}
	if filter.Status == model.ListingStatusRemoved {
		return badRequest("Invalid status")
	}
	return h.list(c, filter)
}

// AdminListListings godoc
// @Summary Browse every listing, removed ones included
// @Tags admin
// @Produce json
// @Security AdminKey
// @Param type query string false "car or part"
// @Param status query string false "Listing status"
// @Param q query string false "Search in title and description"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} ListingListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/marketplace [get]
func (h *ListingHandler) AdminListListings(c echo.Context) error {
	filter, err := listingFilter(c, "")
	if err != nil {
		return err
	}
	return h.list(c, filter)
}

func (h *ListingHandler) list(c echo.Context, filter repository.ListingFilter) error {
	listings, err := h.svc.List(c.Request().Context(), filter)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, ListingListResponse{Listings: listings})
}

// GetListing godoc
// @Summary Get a listing
// @Description Counts a view.
// @Tags marketplace
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} service.ListingResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /marketplace/{id} [get]
func (h *ListingHandler) GetListing(c echo.Context) error {
	id, err := pathID(c, "id", "listing id")
	if err != nil {
		return err
	}
	listing, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, listing)
}

// CreateListing godoc
// @Summary Create a listing
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ListingRequest true "Listing"
// @Success 201 {object} service.ListingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /marketplace [post]
func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req ListingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sellerID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}

	listing, err := h.svc.Create(c.Request().Context(), sellerID, req.ListingInput)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, listing)
}

// UpdateListing godoc
// @Summary Update own listing
// @Tags marketplace
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param request body ListingRequest true "Fields to change"
// @Success 200 {object} service.ListingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /marketplace/{id} [patch]
func (h *ListingHandler) UpdateListing(c echo.Context) error {
	id, err := pathID(c, "id", "listing id")
	if err != nil {
		return err
	}
	var req ListingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sellerID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}

	listing, err := h.svc.Update(c.Request().Context(), id, sellerID, req.ListingInput)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, listing)
}

// DeleteListing godoc
// @Summary Remove own listing
// @Tags marketplace
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param user_id query string false "Acting user"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /marketplace/{id} [delete]
func (h *ListingHandler) DeleteListing(c echo.Context) error {
	id, err := pathID(c, "id", "listing id")
	if err != nil {
		return err
	}
	var req UserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sellerID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}

	if err := h.svc.Remove(c.Request().Context(), id, sellerID); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// AdminUpdateListing godoc
// @Summary Update any listing
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path string true "Listing ID"
// @Param request body service.ListingInput true "Fields to change"
// @Success 200 {object} service.ListingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/marketplace/{id} [patch]
func (h *ListingHandler) AdminUpdateListing(c echo.Context) error {
	id, err := pathID(c, "id", "listing id")
	if err != nil {
		return err
	}
	var in service.ListingInput
	if err := bind(c, &in); err != nil {
		return err
	}

	listing, err := h.svc.AdminUpdate(c.Request().Context(), id, in)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, listing)
}

// AdminDeleteListing godoc
// @Summary Delete any listing permanently
// @Tags admin
// @Produce json
// @Security AdminKey
// @Param id path string true "Listing ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/marketplace/{id} [delete]
func (h *ListingHandler) AdminDeleteListing(c echo.Context) error {
	id, err := pathID(c, "id", "listing id")
	if err != nil {
		return err
	}
	if err := h.svc.AdminDelete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func listingFilter(c echo.Context, defaultStatus model.ListingStatus) (repository.ListingFilter, error) {
	filter := repository.ListingFilter{
		Type:   model.ListingType(strings.ToLower(c.QueryParam("type"))),
		Status: defaultStatus,
		Search: strings.TrimSpace(c.QueryParam("q")),
	}
	filter.Limit, filter.Offset = page(c)
	if v := c.QueryParam("status"); v != "" {
		filter.Status = model.ListingStatus(strings.ToLower(v))
	}
	if v := c.QueryParam("seller_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, badRequest("Invalid seller_id")
		}
		filter.SellerID = &id
	}
	return filter, nil
}
