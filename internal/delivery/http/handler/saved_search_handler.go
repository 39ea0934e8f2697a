package handler

import (
	"studentshub/internal/delivery/http/dto"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/domain/savedsearch"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedSearchHandler struct {
	uc usecase.SavedSearchUsecase
}

type saveSearchRequest struct {
	SearchQuery string              `json:"search_query"`
	Filters     savedsearch.Filters `json:"filters"`
}

func NewSavedSearchHandler(uc usecase.SavedSearchUsecase) *SavedSearchHandler {
	return &SavedSearchHandler{uc: uc}
}

func (h *SavedSearchHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.Map(items, dto.NewSavedSearchResponse))
}

func (h *SavedSearchHandler) Save(c fiber.Ctx) error {
	var req saveSearchRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	s, created, err := h.uc.Save(c.Context(), middleware.Caller(c), usecase.SavedSearchInput{
		Query:   req.SearchQuery,
		Filters: req.Filters,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	if created {
		return response.Created(c, dto.NewSavedSearchResponse(s))
	}
	return response.Success(c, fiber.StatusOK, "search updated", dto.NewSavedSearchResponse(s))
}

func (h *SavedSearchHandler) Delete(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), middleware.Caller(c), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "saved search deleted", nil)
}
