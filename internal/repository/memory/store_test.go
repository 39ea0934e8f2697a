package memory

import (
	"context"
	"errors"
	"testing"

	"studentshub/internal/domain/application"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"
)

func seedJob(t *testing.T, s *Store) (profile.Student, job.Job) {
	t.Helper()
	ctx := context.Background()

	cu, err := s.Users().Create(ctx, user.User{Email: "hr@acme.test", Role: user.RoleCompany, IsActive: true})
	if err != nil {
		t.Fatalf("create company user: %v", err)
	}
	c, err := s.Companies().Upsert(ctx, profile.Company{UserID: cu.ID, CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	j, err := s.Jobs().Create(ctx, job.Job{CompanyID: c.ID, Title: "Intern", IsActive: true})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	su, err := s.Users().Create(ctx, user.User{Email: "ada@uni.test", Role: user.RoleStudent, IsActive: true})
	if err != nil {
		t.Fatalf("create student user: %v", err)
	}
	st, err := s.Students().EnsureForUser(ctx, su.ID)
	if err != nil {
		t.Fatalf("ensure student: %v", err)
	}
	return st, j
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	st, j := seedJob(t, s)

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Applications().Create(ctx, application.Application{StudentID: st.ID, JobID: j.ID, CoverLetter: "hi"}); err != nil {
			return err
		}
		if err := tx.Jobs().IncrementApplicants(ctx, j.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, _ := s.Jobs().GetByID(ctx, j.ID)
	if got.ApplicantCount != 0 {
		t.Fatalf("expected counter rollback, got %d", got.ApplicantCount)
	}
	if _, err := s.Applications().FindActive(ctx, st.ID, j.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected application rollback, got %v", err)
	}
}

func TestApplications_PartialUniqueness(t *testing.T) {
	s := New()
	ctx := context.Background()
	st, j := seedJob(t, s)

	first, err := s.Applications().Create(ctx, application.Application{StudentID: st.ID, JobID: j.ID, CoverLetter: "a"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.CompanyName != "Acme" || first.StudentEmail != "ada@uni.test" {
		t.Fatalf("expected joined fields, got %+v", first)
	}

	if _, err := s.Applications().Create(ctx, application.Application{StudentID: st.ID, JobID: j.ID, CoverLetter: "b"}); !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	first.Status = application.StatusWithdrawn
	if _, err := s.Applications().UpdateStatus(ctx, first); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := s.Applications().Create(ctx, application.Application{StudentID: st.ID, JobID: j.ID, CoverLetter: "c"}); err != nil {
		t.Fatalf("expected re-application after withdrawal, got %v", err)
	}
}

func TestJobs_DecrementFloorsAtZero(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, j := seedJob(t, s)

	if err := s.Jobs().DecrementApplicants(ctx, j.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, _ := s.Jobs().GetByID(ctx, j.ID)
	if got.ApplicantCount != 0 {
		t.Fatalf("expected 0, got %d", got.ApplicantCount)
	}
}
