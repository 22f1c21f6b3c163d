package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"cultofdrive/internal/service"
)

// UploadHandler handles image uploads.
type UploadHandler struct {
	svc service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(svc service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload godoc
// @Summary Upload an image
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image (jpeg, png, webp or gif)"
// @Param category formData string true "cars, avatars or marketplace"
// @Param user_id formData string false "Owner ID"
// @Param label formData string false "Label used in the file name"
// @Success 201 {object} service.UploadResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	owner, err := optionalUser(c, c.FormValue("user_id"))
	if err != nil {
		return fail(err)
	}
	ownerID := ""
	if owner != nil {
		ownerID = owner.String()
	}
	return h.upload(c, ownerID, h.svc.Upload)
}

// AdminUpload godoc
// @Summary Upload an image into any category
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security AdminKey
// @Param file formData file true "Image (jpeg, png, webp or gif)"
// @Param category formData string true "Category"
// @Param user_id formData string false "Owner ID, defaults to public"
// @Param label formData string false "Label used in the file name"
// @Success 201 {object} service.UploadResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Router /admin/upload [post]
func (h *UploadHandler) AdminUpload(c echo.Context) error {
	ownerID := c.FormValue("user_id")
	if ownerID != "" {
		if _, err := uuid.Parse(ownerID); err != nil {
			return badRequest("Invalid user_id")
		}
	}
	return h.upload(c, ownerID, h.svc.AdminUpload)
}

func (h *UploadHandler) upload(c echo.Context, ownerID string, store func(ctx context.Context, in service.UploadInput) (*service.UploadResult, error)) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest("File is required")
	}
	file, err := fh.Open()
	if err != nil {
		return badRequest("Unable to read file")
	}
	defer file.Close()

	result, err := store(c.Request().Context(), service.UploadInput{
		Category: c.FormValue("category"),
		OwnerID:  ownerID,
		Label:    c.FormValue("label"),
		Filename: fh.Filename,
		Size:     fh.Size,
		Body:     file,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, result)
}
