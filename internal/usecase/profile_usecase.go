package usecase

import (
	"context"
	"errors"
	"strings"

	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"
)

type StudentProfileInput struct {
	ResumeURL         *string
	Skills            *[]profile.Skill
	Education         *[]profile.EducationEntry
	WorkExperience    *[]profile.WorkExperience
	Bio               *string
	Location          *string
	Phone             *string
	ExperienceYears   *int
	PreferredJobTypes *[]string
	PortfolioURL      *string
	LinkedInURL       *string
	GithubURL         *string
}

type CompanyProfileInput struct {
	CompanyName string
	Description string
	Industry    string
	Website     string
	Location    string
	LogoURL     string
}

type ProfileUsecase interface {
	GetStudentProfile(ctx context.Context, caller Caller) (profile.Student, error)
	UpdateStudentProfile(ctx context.Context, caller Caller, in StudentProfileInput) (profile.Student, error)
	GetCompanyProfile(ctx context.Context, caller Caller) (profile.Company, error)
	UpsertCompanyProfile(ctx context.Context, caller Caller, in CompanyProfileInput) (profile.Company, error)
}

type Profile struct {
	store repository.Store
}

func NewProfileUsecase(store repository.Store) *Profile {
	return &Profile{store: store}
}

// studentFor resolves the caller's student profile, creating it on first use.
func studentFor(ctx context.Context, store repository.Store, caller Caller) (profile.Student, error) {
	if err := caller.require(user.RoleStudent); err != nil {
		return profile.Student{}, err
	}
	st, err := store.Students().EnsureForUser(ctx, caller.UserID)
	if err != nil {
		return profile.Student{}, internal("resolve student", err)
	}
	return st, nil
}

// companyFor resolves the caller's company profile. A company user that
// has not created one yet may not act as a company.
func companyFor(ctx context.Context, store repository.Store, caller Caller) (profile.Company, error) {
	if err := caller.require(user.RoleCompany); err != nil {
		return profile.Company{}, err
	}
	c, err := store.Companies().GetByUserID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return profile.Company{}, forbidden("company profile required")
		}
		return profile.Company{}, internal("resolve company", err)
	}
	return c, nil
}

func (u *Profile) GetStudentProfile(ctx context.Context, caller Caller) (profile.Student, error) {
	return studentFor(ctx, u.store, caller)
}

func (u *Profile) UpdateStudentProfile(ctx context.Context, caller Caller, in StudentProfileInput) (profile.Student, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return profile.Student{}, err
	}

	if in.Skills != nil {
		skills, err := profile.NormalizeSkills(*in.Skills)
		if err != nil {
			return profile.Student{}, invalid("%v", err)
		}
		st.Skills = skills
	}
	if in.Education != nil {
		if err := profile.ValidateEducation(*in.Education); err != nil {
			return profile.Student{}, invalid("%v", err)
		}
		st.Education = *in.Education
	}
	if in.WorkExperience != nil {
		if err := profile.ValidateWorkExperience(*in.WorkExperience); err != nil {
			return profile.Student{}, invalid("%v", err)
		}
		st.WorkExperience = *in.WorkExperience
	}
	if in.ExperienceYears != nil {
		if *in.ExperienceYears < 0 || *in.ExperienceYears > 60 {
			return profile.Student{}, invalid("experience_years must be between 0 and 60")
		}
		st.ExperienceYears = *in.ExperienceYears
	}
	if in.PreferredJobTypes != nil {
		st.PreferredJobTypes = trimAll(*in.PreferredJobTypes)
	}
	setString(&st.ResumeURL, in.ResumeURL)
	setString(&st.Bio, in.Bio)
	setString(&st.Location, in.Location)
	setString(&st.Phone, in.Phone)
	setString(&st.PortfolioURL, in.PortfolioURL)
	setString(&st.LinkedInURL, in.LinkedInURL)
	setString(&st.GithubURL, in.GithubURL)

	out, err := u.store.Students().Upsert(ctx, st)
	if err != nil {
		return profile.Student{}, internal("update student profile", err)
	}
	return out, nil
}

func (u *Profile) GetCompanyProfile(ctx context.Context, caller Caller) (profile.Company, error) {
	if err := caller.require(user.RoleCompany); err != nil {
		return profile.Company{}, err
	}
	c, err := u.store.Companies().GetByUserID(ctx, caller.UserID)
	if err != nil {
		return profile.Company{}, storeErr("get company profile", "company profile", err)
	}
	return c, nil
}

func (u *Profile) UpsertCompanyProfile(ctx context.Context, caller Caller, in CompanyProfileInput) (profile.Company, error) {
	if err := caller.require(user.RoleCompany); err != nil {
		return profile.Company{}, err
	}
	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return profile.Company{}, invalid("company_name is required")
	}

	out, err := u.store.Companies().Upsert(ctx, profile.Company{
		UserID:      caller.UserID,
		CompanyName: name,
		Description: strings.TrimSpace(in.Description),
		Industry:    strings.TrimSpace(in.Industry),
		Website:     strings.TrimSpace(in.Website),
		Location:    strings.TrimSpace(in.Location),
		LogoURL:     strings.TrimSpace(in.LogoURL),
	})
	if err != nil {
		return profile.Company{}, internal("upsert company profile", err)
	}
	return out, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
