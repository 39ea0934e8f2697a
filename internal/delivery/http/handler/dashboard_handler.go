package handler

import (
	"studentshub/internal/delivery/http/dto"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) Stats(c fiber.Ctx) error {
	st, err := h.uc.Stats(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDashboardStatsResponse(st))
}

func (h *DashboardHandler) UpcomingDeadlines(c fiber.Ctx) error {
	items, err := h.uc.UpcomingDeadlines(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.Map(items, dto.NewDeadlineResponse))
}

func (h *DashboardHandler) RecentActivity(c fiber.Ctx) error {
	items, err := h.uc.RecentActivity(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.Map(items, dto.NewActivityResponse))
}
