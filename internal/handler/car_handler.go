package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cultofdrive/internal/auth"
	"cultofdrive/internal/normalize"
	"cultofdrive/internal/repository"
	"cultofdrive/internal/service"
)

// CarHandler handles car gallery endpoints.
type CarHandler struct {
	carService service.CarService
}

// NewCarHandler creates a new car handler.
func NewCarHandler(carService service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// CarRequest is a car payload plus the acting user.
type CarRequest struct {
	UserID string `json:"user_id"`
	service.CarInput
}

// CarListResponse is a page of cars.
type CarListResponse struct {
	Cars  []service.CarResponse `json:"cars"`
	Total int64                 `json:"total"`
}

// ListCars godoc
// @Summary List cars
// @Tags cars
// @Produce json
// @Param featured query bool false "Only featured cars"
// @Param user_id query string false "Owner ID"
// @Param tag query string false "Tag"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} CarListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cars [get]
func (h *CarHandler) ListCars(c echo.Context) error {
	var filter repository.CarFilter
	filter.Limit, filter.Offset = page(c)
	filter.Tag = strings.TrimSpace(c.QueryParam("tag"))

	if v := c.QueryParam("featured"); v != "" {
		featured := normalize.ParseBool(v)
		filter.Featured = &featured
	}
	if v := c.QueryParam("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return badRequest("Invalid user_id")
		}
		filter.UserID = &id
	}

	cars, total, err := h.carService.ListCars(c.Request().Context(), filter)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, CarListResponse{Cars: cars, Total: total})
}

// AdminListCars godoc
// @Summary List cars for moderation
// @Tags admin
// @Produce json
// @Security AdminKey
// @Param featured query bool false "Only featured cars"
// @Param user_id query string false "Owner ID"
// @Param tag query string false "Tag"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} CarListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/cars [get]
func (h *CarHandler) AdminListCars(c echo.Context) error {
	return h.ListCars(c)
}

// GetCar godoc
// @Summary Get car by id
// @Tags cars
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} service.CarResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [get]
func (h *CarHandler) GetCar(c echo.Context) error {
	id, err := pathID(c, "id", "car id")
	if err != nil {
		return err
	}
	car, err := h.carService.GetCar(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, car)
}

// CreateCar godoc
// @Summary Create a car
// @Description Tags may be a comma separated string or a list. Specs may be newline separated text or a list of strings or key/value objects.
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CarRequest true "Car data"
// @Success 201 {object} service.CarResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cars [post]
func (h *CarHandler) CreateCar(c echo.Context) error {
	var req CarRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	userID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}

	car, err := h.carService.CreateCar(c.Request().Context(), userID, req.CarInput)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, car)
}

// UpdateCar godoc
// @Summary Update own car
// @Tags cars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param request body CarRequest true "Fields to change"
// @Success 200 {object} service.CarResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [patch]
func (h *CarHandler) UpdateCar(c echo.Context) error {
	id, err := pathID(c, "id", "car id")
	if err != nil {
		return err
	}
	var req CarRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	userID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}

	car, err := h.carService.UpdateCar(c.Request().Context(), id, userID, req.CarInput)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, car)
}

// DeleteCar godoc
// @Summary Delete own car
// @Tags cars
// @Produce json
// @Security BearerAuth
// @Param id path string true "Car ID"
// @Param user_id query string false "Acting user ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [delete]
func (h *CarHandler) DeleteCar(c echo.Context) error {
	id, err := pathID(c, "id", "car id")
	if err != nil {
		return err
	}
	var req UserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	userID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}

	if err := h.carService.DeleteCar(c.Request().Context(), id, userID); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// AdminUpdateCar godoc
// @Summary Update any car
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminKey
// @Param id path string true "Car ID"
// @Param request body service.CarInput true "Fields to change"
// @Success 200 {object} service.CarResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/cars/{id} [patch]
func (h *CarHandler) AdminUpdateCar(c echo.Context) error {
	id, err := pathID(c, "id", "car id")
	if err != nil {
		return err
	}
	var in service.CarInput
	if err := bind(c, &in); err != nil {
		return err
	}

	car, err := h.carService.AdminUpdateCar(c.Request().Context(), id, in)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, car)
}

// AdminDeleteCar godoc
// @Summary Delete any car
// @Tags admin
// @Produce json
// @Security AdminKey
// @Param id path string true "Car ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/cars/{id} [delete]
func (h *CarHandler) AdminDeleteCar(c echo.Context) error {
	id, err := pathID(c, "id", "car id")
	if err != nil {
		return err
	}
	if err := h.carService.AdminDeleteCar(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}
