package handler

import (
	"studentshub/internal/delivery/http/dto"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MessageHandler struct {
	uc usecase.MessageUsecase
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) List(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.uc.List(c.Context(), middleware.Caller(c), id, pageFromQuery(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewList(res.Items, res.Page, res.Total, dto.NewMessageResponse))
}

func (h *MessageHandler) Send(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	m, err := h.uc.Send(c.Context(), middleware.Caller(c), id, req.Body)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewMessageResponse(m))
}
