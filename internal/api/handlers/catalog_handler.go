package handlers

import (
	"Recipe-Catalog/domain"
	"Recipe-Catalog/internal/api/presenters"
	"Recipe-Catalog/pkg/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	// CatalogHandler serves one named catalog: ingredients, cuisines or allergens.
	CatalogHandler interface {
		List(c *fiber.Ctx) error
		Get(c *fiber.Ctx) error
		Create(c *fiber.Ctx) error
		Update(c *fiber.Ctx) error
		Delete(c *fiber.Ctx) error
	}

	catalogHandler[T any] struct {
		service   catalog.CatalogService[T]
		validator *validator.Validate
	}
)

func NewCatalogHandler[T any](service catalog.CatalogService[T], validator *validator.Validate) CatalogHandler {
	return &catalogHandler[T]{
		service:   service,
		validator: validator,
	}
}

func (h *catalogHandler[T]) message(format string) string {
	return domain.CatalogMessage(format, h.service.Kind())
}

func (h *catalogHandler[T]) List(c *fiber.Ctx) error {
	res, err := h.service.List(c.Context())
	if err != nil {
		return presenters.HandleError(c, h.message(domain.MessageFailedGetCatalog), err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, h.message(domain.MessageSuccessGetCatalog))
}

func (h *catalogHandler[T]) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenters.HandleError(c, h.message(domain.MessageFailedGetCatalog), err)
	}

	res, err := h.service.Get(c.Context(), id)
	if err != nil {
		return presenters.HandleError(c, h.message(domain.MessageFailedGetCatalog), err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, h.message(domain.MessageSuccessGetCatalog))
}

func (h *catalogHandler[T]) Create(c *fiber.Ctx) error {
	req := new(domain.CatalogRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, h.message(domain.MessageFailedCreateCatalog), err)
	}

	res, err := h.service.Create(c.Context(), *req)
	if err != nil {
		return presenters.HandleError(c, h.message(domain.MessageFailedCreateCatalog), err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, h.message(domain.MessageSuccessCreateCatalog))
}

func (h *catalogHandler[T]) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenters.HandleError(c, h.message(domain.MessageFailedUpdateCatalog), err)
	}

	req := new(domain.CatalogRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, h.message(domain.MessageFailedUpdateCatalog), err)
	}

	res, err := h.service.Rename(c.Context(), id, *req)
	if err != nil {
		return presenters.HandleError(c, h.message(domain.MessageFailedUpdateCatalog), err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, h.message(domain.MessageSuccessUpdateCatalog))
}

func (h *catalogHandler[T]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenters.HandleError(c, h.message(domain.MessageFailedDeleteCatalog), err)
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return presenters.HandleError(c, h.message(domain.MessageFailedDeleteCatalog), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
