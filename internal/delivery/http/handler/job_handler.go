package handler

import (
	"strings"

	"studentshub/internal/delivery/http/dto"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/domain/job"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	jobs usecase.JobUsecase
	recs usecase.RecommendationUsecase
	apps usecase.ApplicationUsecase
}

type jobRequest struct {
	Title               *string         `json:"title"`
	Description         *string         `json:"description"`
	Requirements        *string         `json:"requirements"`
	Responsibilities    *string         `json:"responsibilities"`
	JobType             *string         `json:"job_type"`
	WorkMode            *string         `json:"work_mode"`
	ExperienceLevel     *string         `json:"experience_level"`
	Location            *string         `json:"location"`
	SalaryMin           *int            `json:"salary_min"`
	SalaryMax           *int            `json:"salary_max"`
	SalaryCurrency      *string         `json:"salary_currency"`
	RequiredSkills      *[]skillRequest `json:"required_skills"`
	PositionsAvailable  *int            `json:"positions_available"`
	ApplicationDeadline *string         `json:"application_deadline"`
}

func NewJobHandler(jobs usecase.JobUsecase, recs usecase.RecommendationUsecase, apps usecase.ApplicationUsecase) *JobHandler {
	return &JobHandler{jobs: jobs, recs: recs, apps: apps}
}

func (h *JobHandler) List(c fiber.Ctx) error {
	f := job.Filter{
		Search:          strings.TrimSpace(c.Query("search")),
		JobType:         strings.TrimSpace(c.Query("job_type")),
		Location:        strings.TrimSpace(c.Query("location")),
		ExperienceLevel: strings.TrimSpace(c.Query("experience_level")),
		RemoteOnly:      queryBool(c, "remote"),
	}
	if raw := strings.TrimSpace(c.Query("company_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest("Invalid company_id", err)
		}
		f.CompanyID = &id
	}

	res, err := h.jobs.ListActiveJobs(c.Context(), f, pageFromQuery(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewList(res.Items, res.Page, res.Total, dto.NewJobResponse))
}

func (h *JobHandler) Facets(c fiber.Ctx) error {
	f, err := h.jobs.Facets(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, f)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	j, err := h.jobs.GetJob(c.Context(), middleware.Caller(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}
	j, err := h.jobs.CreateJob(c.Context(), middleware.Caller(c), req.input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewJobResponse(j))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	var req jobRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	j, err := h.jobs.UpdateJob(c.Context(), middleware.Caller(c), id, req.input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) Deactivate(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	j, err := h.jobs.DeactivateJob(c.Context(), middleware.Caller(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job deactivated", dto.NewJobResponse(j))
}

func (h *JobHandler) CompanyJobs(c fiber.Ctx) error {
	items, err := h.jobs.ListCompanyJobs(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.Map(items, dto.NewJobResponse))
}

func (h *JobHandler) Recommended(c fiber.Ctx) error {
	recs, err := h.recs.RecommendedJobs(c.Context(), middleware.Caller(c), queryInt(c, "limit"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.Map(recs, dto.NewRecommendedJobResponse))
}

func (h *JobHandler) Applications(c fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	res, err := h.apps.ListForJob(c.Context(), middleware.Caller(c), id, pageFromQuery(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewList(res.Items, res.Page, res.Total, dto.NewApplicationResponse))
}

func (r jobRequest) input() usecase.JobInput {
	in := usecase.JobInput{
		Title:               r.Title,
		Description:         r.Description,
		Requirements:        r.Requirements,
		Responsibilities:    r.Responsibilities,
		JobType:             r.JobType,
		WorkMode:            r.WorkMode,
		ExperienceLevel:     r.ExperienceLevel,
		Location:            r.Location,
		SalaryMin:           r.SalaryMin,
		SalaryMax:           r.SalaryMax,
		SalaryCurrency:      r.SalaryCurrency,
		PositionsAvailable:  r.PositionsAvailable,
		ApplicationDeadline: r.ApplicationDeadline,
	}
	if r.RequiredSkills != nil {
		skills := toSkills(*r.RequiredSkills)
		in.RequiredSkills = &skills
	}
	return in
}
