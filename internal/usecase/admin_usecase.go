package usecase

import (
	"context"

	"studentshub/internal/domain"
	"studentshub/internal/domain/application"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"

	"github.com/google/uuid"
)

type PlatformStats struct {
	UsersByRole          map[user.Role]int
	ActiveJobs           int
	ApplicationsByStatus application.StatusCounts
}

type AdminUsecase interface {
	Stats(ctx context.Context, caller Caller) (PlatformStats, error)
	SetCompanyVerification(ctx context.Context, caller Caller, companyID uuid.UUID, status string) (profile.Company, error)
}

type Admin struct {
	store repository.Store
}

func NewAdminUsecase(store repository.Store) *Admin {
	return &Admin{store: store}
}

func (u *Admin) Stats(ctx context.Context, caller Caller) (PlatformStats, error) {
	if err := caller.require(user.RoleAdmin); err != nil {
		return PlatformStats{}, err
	}

	roles, err := u.store.Users().CountByRole(ctx)
	if err != nil {
		return PlatformStats{}, internal("count users", err)
	}
	_, activeJobs, err := u.store.Jobs().ListActive(ctx, job.Filter{}, domain.Page{Page: 1, Limit: 1})
	if err != nil {
		return PlatformStats{}, internal("count active jobs", err)
	}
	byStatus, err := u.store.Applications().CountByStatus(ctx)
	if err != nil {
		return PlatformStats{}, internal("count applications", err)
	}

	// Report every role and status, including empty ones.
	for _, r := range []user.Role{user.RoleStudent, user.RoleCompany, user.RoleAdmin} {
		if _, ok := roles[r]; !ok {
			roles[r] = 0
		}
	}
	for _, s := range application.AllStatuses {
		if _, ok := byStatus[s]; !ok {
			byStatus[s] = 0
		}
	}
	return PlatformStats{UsersByRole: roles, ActiveJobs: activeJobs, ApplicationsByStatus: byStatus}, nil
}

func (u *Admin) SetCompanyVerification(ctx context.Context, caller Caller, companyID uuid.UUID, status string) (profile.Company, error) {
	if err := caller.require(user.RoleAdmin); err != nil {
		return profile.Company{}, err
	}
	vs, err := profile.ParseVerificationStatus(status)
	if err != nil {
		return profile.Company{}, invalid("%v", err)
	}
	c, err := u.store.Companies().SetVerification(ctx, companyID, vs)
	if err != nil {
		return profile.Company{}, storeErr("set company verification", "company", err)
	}
	return c, nil
}
