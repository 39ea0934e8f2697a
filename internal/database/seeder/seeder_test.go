package seeder

import (
	"context"
	"errors"
	"testing"

	"studentshub/internal/domain/profile"
	"studentshub/internal/repository"
	"studentshub/internal/repository/memory"

	"golang.org/x/crypto/bcrypt"
)

func testSeeders() []Seeder {
	return []Seeder{
		DemoAccountsSeeder{Password: DemoPassword, Cost: bcrypt.MinCost},
		DemoJobsSeeder{},
	}
}

func TestRunner_Idempotent(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	r := Runner{Seeders: testSeeders()}

	for i := 0; i < 2; i++ {
		if err := r.Run(ctx, s); err != nil {
			t.Fatalf("run #%d: %v", i+1, err)
		}
	}

	owner, err := s.Users().GetByEmail(ctx, DemoCompanyEmail)
	if err != nil {
		t.Fatalf("demo company user: %v", err)
	}
	company, err := s.Companies().GetByUserID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("demo company: %v", err)
	}
	if company.VerificationStatus != profile.VerificationVerified {
		t.Fatalf("expected verified company, got %s", company.VerificationStatus)
	}
	jobs, err := s.Jobs().ListByCompany(ctx, company.ID)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 demo jobs after two runs, got %d", len(jobs))
	}

	student, err := s.Users().GetByEmail(ctx, DemoStudentEmail)
	if err != nil {
		t.Fatalf("demo student: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(DemoPassword)); err != nil {
		t.Fatalf("demo password does not verify: %v", err)
	}
	st, err := s.Students().GetByUserID(ctx, student.ID)
	if err != nil || len(st.Skills) == 0 {
		t.Fatalf("expected seeded skills, got %+v err=%v", st.Skills, err)
	}
}

type failingSeeder struct{}

func (failingSeeder) Name() string { return "failing" }

func (failingSeeder) Run(context.Context, repository.Store) error { return errors.New("boom") }

func TestRunner_RollsBack(t *testing.T) {
	s := memory.New()
	ctx := context.Background()
	r := Runner{Seeders: append(testSeeders(), failingSeeder{})}

	if err := r.Run(ctx, s); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := s.Users().GetByEmail(ctx, DemoCompanyEmail); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected rollback, got %v", err)
	}
}

func TestDemoJobs_RequiresCompany(t *testing.T) {
	if err := (DemoJobsSeeder{}).Run(context.Background(), memory.New()); err == nil {
		t.Fatalf("expected error without demo company")
	}
}
