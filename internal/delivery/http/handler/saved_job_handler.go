package handler

import (
	"fmt"
	"strings"

	"studentshub/internal/delivery/http/dto"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/domain/savedjob"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SavedJobHandler struct {
	uc usecase.SavedJobUsecase
}

type saveJobRequest struct {
	JobID string `json:"job_id"`
	Notes string `json:"notes"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

type bulkUnsaveRequest struct {
	SavedJobIDs []string `json:"saved_job_ids"`
}

func NewSavedJobHandler(uc usecase.SavedJobUsecase) *SavedJobHandler {
	return &SavedJobHandler{uc: uc}
}

func (h *SavedJobHandler) Save(c fiber.Ctx) error {
	var req saveJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	jobID, err := uuid.Parse(strings.TrimSpace(req.JobID))
	if err != nil {
		return badRequest("Invalid job_id", err)
	}

	v, created, err := h.uc.Save(c.Context(), middleware.Caller(c), jobID, req.Notes)
	if err != nil {
		return mapUsecaseError(err)
	}
	if created {
		return response.Created(c, dto.NewSavedJobResponse(v))
	}
	return response.Success(c, fiber.StatusOK, "job already saved", dto.NewSavedJobResponse(v))
}

func (h *SavedJobHandler) Unsave(c fiber.Ctx) error {
	jobID, err := paramUUID(c, "jobId")
	if err != nil {
		return err
	}
	if err := h.uc.Unsave(c.Context(), middleware.Caller(c), jobID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job removed from saved", nil)
}

func (h *SavedJobHandler) BulkUnsave(c fiber.Ctx) error {
	var req bulkUnsaveRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	ids := make([]uuid.UUID, 0, len(req.SavedJobIDs))
	for _, raw := range req.SavedJobIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return badRequest("Invalid saved_job_ids", err)
		}
		ids = append(ids, id)
	}

	n, err := h.uc.BulkUnsave(c.Context(), middleware.Caller(c), ids)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, fmt.Sprintf("Removed %d jobs from saved list", n),
		dto.BulkUnsaveResponse{DeletedCount: n})
}

func (h *SavedJobHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), middleware.Caller(c), savedjob.ParseSort(c.Query("sort")))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.Map(items, dto.NewSavedJobResponse))
}

func (h *SavedJobHandler) Check(c fiber.Ctx) error {
	jobID, err := paramUUID(c, "jobId")
	if err != nil {
		return err
	}
	saved, v, err := h.uc.IsSaved(c.Context(), middleware.Caller(c), jobID)
	if err != nil {
		return mapUsecaseError(err)
	}

	res := dto.SavedJobCheckResponse{IsSaved: saved}
	if v != nil {
		r := dto.NewSavedJobResponse(*v)
		res.SavedJob = &r
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SavedJobHandler) UpdateNotes(c fiber.Ctx) error {
	jobID, err := paramUUID(c, "jobId")
	if err != nil {
		return err
	}
	var req notesRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	v, err := h.uc.UpdateNotes(c.Context(), middleware.Caller(c), jobID, req.Notes)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSavedJobResponse(v))
}

func (h *SavedJobHandler) Upcoming(c fiber.Ctx) error {
	items, err := h.uc.Upcoming(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.Map(items, dto.NewSavedJobResponse))
}

func (h *SavedJobHandler) Stats(c fiber.Ctx) error {
	st, err := h.uc.Stats(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}
