package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cultofdrive/internal/auth"
	"cultofdrive/internal/errors"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// SuccessResponse acknowledges a write with no other payload.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// UserRequest carries the acting user's id in a body or query string.
type UserRequest struct {
	UserID string `json:"user_id" query:"user_id" form:"user_id"`
}

func fail(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: message})
}

// bind decodes the request into req and runs struct validation.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("Invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return fail(err)
	}
	return nil
}

func pathID(c echo.Context, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, badRequest("Invalid " + label)
	}
	return id, nil
}

// optionalUser resolves the acting user when the request names one, or nil for
// anonymous requests.
func optionalUser(c echo.Context, claimed string) (*uuid.UUID, error) {
	if claimed == "" && auth.CurrentClaims(c) == nil {
		return nil, nil
	}
	id, err := auth.ActingUser(c, claimed)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// page reads limit and offset, clamping limit to maxPageSize.
func page(c echo.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err = strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
