package handler

import (
	"strings"

	"studentshub/internal/delivery/http/dto"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/domain/application"
	"studentshub/internal/domain/user"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type applyRequest struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`
}

type statusUpdateRequest struct {
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
	RejectionReason string  `json:"rejection_reason"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	jobID, err := uuid.Parse(strings.TrimSpace(req.JobID))
	if err != nil {
		return badRequest("Invalid job_id", err)
	}

	a, err := h.uc.Apply(c.Context(), middleware.Caller(c), usecase.ApplyInput{
		JobID:       jobID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.ApplyResponse{ApplicationID: a.ID, Status: string(a.Status)})
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	caller := middleware.Caller(c)
	a, err := h.uc.GetApplication(c.Context(), caller, id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, present(caller, a))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req statusUpdateRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	a, err := h.uc.UpdateStatus(c.Context(), middleware.Caller(c), id, usecase.StatusUpdateInput{
		Status:          req.Status,
		Notes:           req.Notes,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "application status updated", dto.NewApplicationResponse(a))
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.uc.Withdraw(c.Context(), middleware.Caller(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "application withdrawn", dto.NewStudentApplicationResponse(a))
}

func (h *ApplicationHandler) Mine(c fiber.Ctx) error {
	res, err := h.uc.ListMine(c.Context(), middleware.Caller(c), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewList(res.Items, res.Page, res.Total, dto.NewStudentApplicationResponse))
}

func (h *ApplicationHandler) ForStudent(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	caller := middleware.Caller(c)
	res, err := h.uc.ListForStudent(c.Context(), caller, id, c.Query("status"), pageFromQuery(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewList(res.Items, res.Page, res.Total, func(a application.Application) dto.ApplicationResponse {
			return present(caller, a)
		}))
}

func (h *ApplicationHandler) ForCompany(c fiber.Ctx) error {
	res, err := h.uc.ListForCompany(c.Context(), middleware.Caller(c), pageFromQuery(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewList(res.Items, res.Page, res.Total, dto.NewApplicationResponse))
}

func present(caller usecase.Caller, a application.Application) dto.ApplicationResponse {
	if caller.Role == user.RoleStudent {
		return dto.NewStudentApplicationResponse(a)
	}
	return dto.NewApplicationResponse(a)
}
