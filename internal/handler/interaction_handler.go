package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cultofdrive/internal/auth"
	"cultofdrive/internal/service"
)

// InteractionHandler handles favorites, likes and comments.
type InteractionHandler struct {
	svc service.InteractionService
}

// NewInteractionHandler creates a new interaction handler.
func NewInteractionHandler(svc service.InteractionService) *InteractionHandler {
	return &InteractionHandler{svc: svc}
}

// FavoriteResponse is the favorite state of a car.
type FavoriteResponse struct {
	Count       int64 `json:"count"`
	IsFavorited bool  `json:"is_favorited"`
}

// LikeResponse is the like state of a car.
type LikeResponse struct {
	Count   int64 `json:"count"`
	IsLiked bool  `json:"is_liked"`
}

// CommentRequest posts a comment.
type CommentRequest struct {
	UserID string `json:"user_id"`
	Body   string `json:"body"`
}

// CommentDeleteRequest identifies a comment to delete.
type CommentDeleteRequest struct {
	UserID    string `json:"user_id" query:"user_id"`
	CommentID string `json:"comment_id" query:"comment_id" validate:"required,uuid"`
}

// CommentListResponse lists a car's comments.
type CommentListResponse struct {
	Comments []service.CommentResponse `json:"comments"`
}

type reactionFunc func(c echo.Context, carID, userID uuid.UUID) (*service.ReactionStatus, error)

// GetFavorites godoc
// @Summary Favorite count for a car
// @Tags interactions
// @Produce json
// @Param id path string true "Car ID"
// @Param user_id query string false "Report is_favorited for this user"
// @Success 200 {object} FavoriteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /cars/{id}/favorites [get]
func (h *InteractionHandler) GetFavorites(c echo.Context) error {
	status, err := h.status(c, h.svc.FavoriteStatus)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, FavoriteResponse{Count: status.Count, IsFavorited: status.Active})
}

// AddFavorite godoc
// @Summary Favorite a car
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Car ID"
// @Param request body UserRequest true "Acting user"
// @Success 201 {object} FavoriteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /cars/{id}/favorites [post]
func (h *InteractionHandler) AddFavorite(c echo.Context) error {
	status, err := h.react(c, func(c echo.Context, carID, userID uuid.UUID) (*service.ReactionStatus, error) {
		return h.svc.AddFavorite(c.Request().Context(), carID, userID)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, FavoriteResponse{Count: status.Count, IsFavorited: status.Active})
}

// RemoveFavorite godoc
// @Summary Remove a favorite
// @Tags interactions
// @Produce json
// @Param id path string true "Car ID"
// @Param user_id query string false "Acting user"
// @Success 200 {object} FavoriteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /cars/{id}/favorites [delete]
func (h *InteractionHandler) RemoveFavorite(c echo.Context) error {
	status, err := h.react(c, func(c echo.Context, carID, userID uuid.UUID) (*service.ReactionStatus, error) {
		return h.svc.RemoveFavorite(c.Request().Context(), carID, userID)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, FavoriteResponse{Count: status.Count, IsFavorited: status.Active})
}

// GetLikes godoc
// @Summary Like count for a car
// @Tags interactions
// @Produce json
// @Param id path string true "Car ID"
// @Param user_id query string false "Report is_liked for this user"
// @Success 200 {object} LikeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /cars/{id}/likes [get]
func (h *InteractionHandler) GetLikes(c echo.Context) error {
	status, err := h.status(c, h.svc.LikeStatus)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LikeResponse{Count: status.Count, IsLiked: status.Active})
}

// AddLike godoc
// @Summary Like a car
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Car ID"
// @Param request body UserRequest true "Acting user"
// @Success 201 {object} LikeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /cars/{id}/likes [post]
func (h *InteractionHandler) AddLike(c echo.Context) error {
	status, err := h.react(c, func(c echo.Context, carID, userID uuid.UUID) (*service.ReactionStatus, error) {
		return h.svc.AddLike(c.Request().Context(), carID, userID)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, LikeResponse{Count: status.Count, IsLiked: status.Active})
}

// RemoveLike godoc
// @Summary Remove a like
// @Tags interactions
// @Produce json
// @Param id path string true "Car ID"
// @Param user_id query string false "Acting user"
// @Success 200 {object} LikeResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /cars/{id}/likes [delete]
func (h *InteractionHandler) RemoveLike(c echo.Context) error {
	status, err := h.react(c, func(c echo.Context, carID, userID uuid.UUID) (*service.ReactionStatus, error) {
		return h.svc.RemoveLike(c.Request().Context(), carID, userID)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, LikeResponse{Count: status.Count, IsLiked: status.Active})
}

// ListComments godoc
// @Summary List comments on a car
// @Tags interactions
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} CommentListResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id}/comments [get]
func (h *InteractionHandler) ListComments(c echo.Context) error {
	carID, err := pathID(c, "id", "car id")
	if err != nil {
		return err
	}
	comments, err := h.svc.ListComments(c.Request().Context(), carID)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, CommentListResponse{Comments: comments})
}

// AddComment godoc
// @Summary Comment on a car
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Car ID"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} service.CommentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id}/comments [post]
func (h *InteractionHandler) AddComment(c echo.Context) error {
	carID, err := pathID(c, "id", "car id")
	if err != nil {
		return err
	}
	var req CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	userID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}

	comment, err := h.svc.AddComment(c.Request().Context(), carID, userID, req.Body)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary Delete own comment
// @Tags interactions
// @Produce json
// @Param id path string true "Car ID"
// @Param comment_id query string true "Comment ID"
// @Param user_id query string false "Acting user"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id}/comments [delete]
func (h *InteractionHandler) DeleteComment(c echo.Context) error {
	carID, err := pathID(c, "id", "car id")
	if err != nil {
		return err
	}
	var req CommentDeleteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	commentID, err := uuid.Parse(req.CommentID)
	if err != nil {
		return badRequest("Invalid comment id")
	}
	userID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return fail(err)
	}

	if err := h.svc.DeleteComment(c.Request().Context(), carID, commentID, userID); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

func (h *InteractionHandler) status(c echo.Context, get func(ctx context.Context, carID uuid.UUID, userID *uuid.UUID) (*service.ReactionStatus, error)) (*service.ReactionStatus, error) {
	carID, err := pathID(c, "id", "car id")
	if err != nil {
		return nil, err
	}
	userID, err := optionalUser(c, c.QueryParam("user_id"))
	if err != nil {
		return nil, fail(err)
	}
	status, err := get(c.Request().Context(), carID, userID)
	if err != nil {
		return nil, fail(err)
	}
	return status, nil
}

func (h *InteractionHandler) react(c echo.Context, do reactionFunc) (*service.ReactionStatus, error) {
	carID, err := pathID(c, "id", "car id")
	if err != nil {
		return nil, err
	}
	var req UserRequest
	if err := bind(c, &req); err != nil {
		return nil, err
	}
	userID, err := auth.ActingUser(c, req.UserID)
	if err != nil {
		return nil, fail(err)
	}
	status, err := do(c, carID, userID)
	if err != nil {
		return nil, fail(err)
	}
	return status, nil
}
