package handler

import (
	"studentshub/internal/delivery/http/dto"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	res, err := h.uc.List(c.Context(), middleware.Caller(c), queryBool(c, "unread_only"), pageFromQuery(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NotificationListResponse{
		ListResponse: dto.NewList(res.Items, res.Page, res.Total, dto.NewNotificationResponse),
		UnreadCount:  res.UnreadCount,
	})
}

func (h *NotificationHandler) UnreadCount(c fiber.Ctx) error {
	n, err := h.uc.UnreadCount(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int{"unread_count": n})
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.uc.MarkRead(c.Context(), middleware.Caller(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNotificationResponse(n))
}

func (h *NotificationHandler) MarkAllRead(c fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int64{"updated": n})
}
