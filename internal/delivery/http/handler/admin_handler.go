package handler

import (
	"studentshub/internal/delivery/http/dto"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc usecase.AdminUsecase
}

type verificationRequest struct {
	Status string `json:"status"`
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) Stats(c fiber.Ctx) error {
	st, err := h.uc.Stats(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPlatformStatsResponse(st))
}

func (h *AdminHandler) SetCompanyVerification(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req verificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	co, err := h.uc.SetCompanyVerification(c.Context(), middleware.Caller(c), id, req.Status)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyProfileResponse(co))
}
