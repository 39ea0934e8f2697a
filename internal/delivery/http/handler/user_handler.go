package handler

import (
	"studentshub/internal/delivery/http/dto"
	"studentshub/internal/delivery/http/middleware"
	"studentshub/internal/pkg/response"
	"studentshub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	auth    usecase.AuthUsecase
	profile usecase.ProfileUsecase
}

type studentProfileRequest struct {
	ResumeURL         *string                  `json:"resume_url"`
	Skills            *[]skillRequest          `json:"skills"`
	Education         *[]educationRequest      `json:"education"`
	WorkExperience    *[]workExperienceRequest `json:"work_experience"`
	Bio               *string                  `json:"bio"`
	Location          *string                  `json:"location"`
	Phone             *string                  `json:"phone"`
	ExperienceYears   *int                     `json:"experience_years"`
	PreferredJobTypes *[]string                `json:"preferred_job_types"`
	PortfolioURL      *string                  `json:"portfolio_url"`
	LinkedInURL       *string                  `json:"linkedin_url"`
	GithubURL         *string                  `json:"github_url"`
}

type companyProfileRequest struct {
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	LogoURL     string `json:"logo_url"`
}

func NewUserHandler(auth usecase.AuthUsecase, profile usecase.ProfileUsecase) *UserHandler {
	return &UserHandler{auth: auth, profile: profile}
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	usr, err := h.auth.Me(c.Context(), middleware.Caller(c).UserID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewUserResponse(usr))
}

func (h *UserHandler) GetStudentProfile(c fiber.Ctx) error {
	st, err := h.profile.GetStudentProfile(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStudentProfileResponse(st))
}

func (h *UserHandler) UpdateStudentProfile(c fiber.Ctx) error {
	var req studentProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	in := usecase.StudentProfileInput{
		ResumeURL:         req.ResumeURL,
		Bio:               req.Bio,
		Location:          req.Location,
		Phone:             req.Phone,
		ExperienceYears:   req.ExperienceYears,
		PreferredJobTypes: req.PreferredJobTypes,
		PortfolioURL:      req.PortfolioURL,
		LinkedInURL:       req.LinkedInURL,
		GithubURL:         req.GithubURL,
	}
	if req.Skills != nil {
		skills := toSkills(*req.Skills)
		in.Skills = &skills
	}
	if req.Education != nil {
		edu := toEducation(*req.Education)
		in.Education = &edu
	}
	if req.WorkExperience != nil {
		work := toWorkExperience(*req.WorkExperience)
		in.WorkExperience = &work
	}

	st, err := h.profile.UpdateStudentProfile(c.Context(), middleware.Caller(c), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStudentProfileResponse(st))
}

func (h *UserHandler) GetCompanyProfile(c fiber.Ctx) error {
	co, err := h.profile.GetCompanyProfile(c.Context(), middleware.Caller(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyProfileResponse(co))
}

func (h *UserHandler) UpsertCompanyProfile(c fiber.Ctx) error {
	var req companyProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest("Invalid request payload", err)
	}

	co, err := h.profile.UpsertCompanyProfile(c.Context(), middleware.Caller(c), usecase.CompanyProfileInput{
		CompanyName: req.CompanyName,
		Description: req.Description,
		Industry:    req.Industry,
		Website:     req.Website,
		Location:    req.Location,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCompanyProfileResponse(co))
}
