package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"studentshub/internal/domain"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"
	"studentshub/internal/search"

	"github.com/google/uuid"
)

const jobFacetsCacheKey = "jobs:facets"

type JobCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type JobInput struct {
	Title               *string
	Description         *string
	Requirements        *string
	Responsibilities    *string
	JobType             *string
	WorkMode            *string
	ExperienceLevel     *string
	Location            *string
	SalaryMin           *int
	SalaryMax           *int
	SalaryCurrency      *string
	RequiredSkills      *[]profile.Skill
	PositionsAvailable  *int
	ApplicationDeadline *string
}

type JobPage struct {
	Items []job.Job
	Total int
	Page  domain.Page
}

type JobUsecase interface {
	CreateJob(ctx context.Context, caller Caller, in JobInput) (job.Job, error)
	GetJob(ctx context.Context, caller Caller, jobID uuid.UUID) (job.Job, error)
	ListActiveJobs(ctx context.Context, f job.Filter, p domain.Page) (JobPage, error)
	UpdateJob(ctx context.Context, caller Caller, jobID uuid.UUID, in JobInput) (job.Job, error)
	DeactivateJob(ctx context.Context, caller Caller, jobID uuid.UUID) (job.Job, error)
	ListCompanyJobs(ctx context.Context, caller Caller) ([]job.Job, error)
	Facets(ctx context.Context) (job.Facets, error)
}

type Jobs struct {
	store    repository.Store
	cache    JobCache
	cacheTTL time.Duration
}

func NewJobUsecase(store repository.Store, cache JobCache, cacheTTL time.Duration) *Jobs {
	return &Jobs{store: store, cache: cache, cacheTTL: cacheTTL}
}

func (u *Jobs) CreateJob(ctx context.Context, caller Caller, in JobInput) (job.Job, error) {
	company, err := companyFor(ctx, u.store, caller)
	if err != nil {
		return job.Job{}, err
	}

	j := job.Job{
		CompanyID:          company.ID,
		IsActive:           true,
		PositionsAvailable: 1,
		WorkMode:           job.WorkModeOnsite,
	}
	if err := applyJobInput(&j, in); err != nil {
		return job.Job{}, err
	}
	if err := j.Validate(); err != nil {
		return job.Job{}, invalid("%v", err)
	}

	created, err := u.store.Jobs().Create(ctx, j)
	if err != nil {
		return job.Job{}, internal("create job", err)
	}
	u.invalidateFacets(ctx)
	return created, nil
}

func (u *Jobs) GetJob(ctx context.Context, caller Caller, jobID uuid.UUID) (job.Job, error) {
	j, err := u.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return job.Job{}, storeErr("get job", "job", err)
	}
	if j.IsActive {
		return j, nil
	}
	owns, err := ownsJob(ctx, u.store, caller, j)
	if err != nil {
		return job.Job{}, err
	}
	if !owns {
		return job.Job{}, notFound("job")
	}
	return j, nil
}

func (u *Jobs) ListActiveJobs(ctx context.Context, f job.Filter, p domain.Page) (JobPage, error) {
	p = p.Normalize()
	if f.Search != "" {
		f.SearchVariants = search.Process(f.Search).Variants
	}
	items, total, err := u.store.Jobs().ListActive(ctx, f, p)
	if err != nil {
		return JobPage{}, internal("list jobs", err)
	}
	return JobPage{Items: items, Total: total, Page: p}, nil
}

func (u *Jobs) UpdateJob(ctx context.Context, caller Caller, jobID uuid.UUID, in JobInput) (job.Job, error) {
	j, err := u.ownedJob(ctx, caller, jobID)
	if err != nil {
		return job.Job{}, err
	}
	if err := applyJobInput(&j, in); err != nil {
		return job.Job{}, err
	}
	if err := j.Validate(); err != nil {
		return job.Job{}, invalid("%v", err)
	}

	updated, err := u.store.Jobs().Update(ctx, j)
	if err != nil {
		return job.Job{}, storeErr("update job", "job", err)
	}
	u.invalidateFacets(ctx)
	return updated, nil
}

func (u *Jobs) DeactivateJob(ctx context.Context, caller Caller, jobID uuid.UUID) (job.Job, error) {
	if _, err := u.ownedJob(ctx, caller, jobID); err != nil {
		return job.Job{}, err
	}

	j, err := u.store.Jobs().SetActive(ctx, jobID, false)
	if err != nil {
		return job.Job{}, storeErr("deactivate job", "job", err)
	}
	u.invalidateFacets(ctx)
	return j, nil
}

func (u *Jobs) ListCompanyJobs(ctx context.Context, caller Caller) ([]job.Job, error) {
	company, err := companyFor(ctx, u.store, caller)
	if err != nil {
		return nil, err
	}
	items, err := u.store.Jobs().ListByCompany(ctx, company.ID)
	if err != nil {
		return nil, internal("list company jobs", err)
	}
	return items, nil
}

func (u *Jobs) Facets(ctx context.Context) (job.Facets, error) {
	if u.cache != nil {
		var cached job.Facets
		if ok, err := u.cache.GetJSON(ctx, jobFacetsCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	f, err := u.store.Jobs().Facets(ctx)
	if err != nil {
		return job.Facets{}, internal("job facets", err)
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, jobFacetsCacheKey, f, u.cacheTTL)
	}
	return f, nil
}

func (u *Jobs) invalidateFacets(ctx context.Context) {
	if u.cache != nil {
		_ = u.cache.Delete(ctx, jobFacetsCacheKey)
	}
}

// ownedJob loads a job the caller may manage: its owning company or an admin.
func (u *Jobs) ownedJob(ctx context.Context, caller Caller, jobID uuid.UUID) (job.Job, error) {
	if err := caller.require(user.RoleCompany, user.RoleAdmin); err != nil {
		return job.Job{}, err
	}
	j, err := u.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return job.Job{}, storeErr("load job", "job", err)
	}
	owns, err := ownsJob(ctx, u.store, caller, j)
	if err != nil {
		return job.Job{}, err
	}
	if !owns {
		return job.Job{}, forbidden("job belongs to another company")
	}
	return j, nil
}

func ownsJob(ctx context.Context, store repository.Store, caller Caller, j job.Job) (bool, error) {
	switch caller.Role {
	case user.RoleAdmin:
		return true, nil
	case user.RoleCompany:
		c, err := store.Companies().GetByUserID(ctx, caller.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return false, nil
			}
			return false, internal("resolve company", err)
		}
		return c.ID == j.CompanyID, nil
	default:
		return false, nil
	}
}

func applyJobInput(j *job.Job, in JobInput) error {
	setString(&j.Title, in.Title)
	setString(&j.Description, in.Description)
	setString(&j.Requirements, in.Requirements)
	setString(&j.Responsibilities, in.Responsibilities)
	setString(&j.JobType, in.JobType)
	setString(&j.ExperienceLevel, in.ExperienceLevel)
	setString(&j.Location, in.Location)
	setString(&j.SalaryCurrency, in.SalaryCurrency)

	if in.WorkMode != nil {
		m, err := job.ParseWorkMode(*in.WorkMode)
		if err != nil {
			return invalid("%v", err)
		}
		j.WorkMode = m
	}
	if in.SalaryMin != nil {
		v := *in.SalaryMin
		j.SalaryMin = &v
	}
	if in.SalaryMax != nil {
		v := *in.SalaryMax
		j.SalaryMax = &v
	}
	if in.PositionsAvailable != nil {
		j.PositionsAvailable = *in.PositionsAvailable
	}
	if in.RequiredSkills != nil {
		skills, err := profile.NormalizeSkills(*in.RequiredSkills)
		if err != nil {
			return invalid("%v", err)
		}
		j.RequiredSkills = skills
	}
	if in.ApplicationDeadline != nil {
		d, err := ParseDeadline(*in.ApplicationDeadline)
		if err != nil {
			return err
		}
		j.ApplicationDeadline = d
	}
	return nil
}

// ParseDeadline accepts RFC 3339 timestamps or plain dates. A plain date
// stays open through the last microsecond of that day in UTC, the finest
// precision Postgres keeps. Blank input clears the deadline.
const endOfDay = 24*time.Hour - time.Microsecond

func ParseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		t := d.Add(endOfDay).UTC()
		return &t, nil
	}
	return nil, invalid("application_deadline must be RFC3339 or YYYY-MM-DD")
}
