package seeder

import (
	"context"
	"errors"

	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"
	ucauth "studentshub/internal/usecase/auth"
)

const (
	DemoCompanyEmail = "hr@acme.test"
	DemoStudentEmail = "student@studentshub.test"
)

type DemoAccountsSeeder struct {
	Password string
	Cost     int
}

func (DemoAccountsSeeder) Name() string { return "demo_accounts" }

func (s DemoAccountsSeeder) Run(ctx context.Context, store repository.Store) error {
	hash, err := ucauth.HashPassword(s.Password, s.Cost)
	if err != nil {
		return err
	}

	company, err := ensureUser(ctx, store, user.User{
		Email:        DemoCompanyEmail,
		PasswordHash: hash,
		Role:         user.RoleCompany,
		FirstName:    "Hiring",
		LastName:     "Team",
		IsActive:     true,
	})
	if err != nil {
		return err
	}
	if _, err := store.Companies().GetByUserID(ctx, company.ID); errors.Is(err, repository.ErrNotFound) {
		if _, err := store.Companies().Upsert(ctx, profile.Company{
			UserID:             company.ID,
			CompanyName:        "Acme Labs",
			Description:        "Product studio hiring interns and graduates.",
			Industry:           "Software",
			Website:            "https://acme.test",
			Location:           "Jakarta",
			VerificationStatus: profile.VerificationVerified,
		}); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	student, err := ensureUser(ctx, store, user.User{
		Email:        DemoStudentEmail,
		PasswordHash: hash,
		Role:         user.RoleStudent,
		FirstName:    "Sari",
		LastName:     "Wijaya",
		IsActive:     true,
	})
	if err != nil {
		return err
	}
	st, err := store.Students().EnsureForUser(ctx, student.ID)
	if err != nil {
		return err
	}
	if len(st.Skills) == 0 {
		st.Skills = []profile.Skill{{Name: "Go", Level: 4}, {Name: "PostgreSQL", Level: 3}, {Name: "Docker", Level: 2}}
		st.Location = "Jakarta"
		st.PreferredJobTypes = []string{"internship", "full_time"}
		st.Bio = "Final-year computer science student."
		if _, err := store.Students().Upsert(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, store repository.Store, u user.User) (user.User, error) {
	existing, err := store.Users().GetByEmail(ctx, u.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return user.User{}, err
	}
	return store.Users().Create(ctx, u)
}
