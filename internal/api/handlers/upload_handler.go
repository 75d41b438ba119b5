package handlers

import (
	"Recipe-Catalog/domain"
	"Recipe-Catalog/internal/api/presenters"
	"Recipe-Catalog/internal/utils/storage"
	"path"

	"github.com/gofiber/fiber/v2"
)

type (
	UploadHandler interface {
		UploadImage(c *fiber.Ctx) error
	}

	uploadHandler struct {
		s3 storage.AwsS3
	}
)

// NewUploadHandler accepts a nil store; uploads then answer 503.
func NewUploadHandler(s3 storage.AwsS3) UploadHandler {
	return &uploadHandler{s3: s3}
}

func (h *uploadHandler) UploadImage(c *fiber.Ctx) error {
	if h.s3 == nil {
		return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedUploadImage, domain.ErrStorageDisabled)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if _, err := storage.CheckExtension(file.Filename, storage.AllowImage...); err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadImage, err)
	}

	key, err := h.s3.UploadFile(c.Context(), file, "images", storage.AllowImage...)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, domain.UploadImageResponse{
		Filename: path.Base(key),
		URL:      h.s3.GetPublicLinkKey(key),
	}, fiber.StatusCreated, domain.MessageSuccessUploadImage)
}
