package repository_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"studentshub/internal/config"
	"studentshub/internal/database/migration"
	dbpostgres "studentshub/internal/database/postgres"
	"studentshub/internal/domain/application"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"
	"studentshub/migrations"

	"github.com/google/uuid"
)

// openTestStore connects to the database named by STUDENTSHUB_TEST_DB_*
// and applies migrations. Tests skip when it is not configured.
func openTestStore(t *testing.T) *repository.PostgresStore {
	t.Helper()
	host := os.Getenv("STUDENTSHUB_TEST_DB_HOST")
	if host == "" {
		t.Skip("STUDENTSHUB_TEST_DB_HOST not set")
	}
	port := os.Getenv("STUDENTSHUB_TEST_DB_PORT")
	if port == "" {
		port = "5432"
	}
	cfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     os.Getenv("STUDENTSHUB_TEST_DB_NAME"),
		DBUser:     os.Getenv("STUDENTSHUB_TEST_DB_USER"),
		DBPassword: os.Getenv("STUDENTSHUB_TEST_DB_PASSWORD"),
		DBSSLMode:  "disable",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := (migration.Runner{Source: migrations.FS}).Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return repository.NewPostgresStore(db)
}

func seedPair(t *testing.T, s repository.Store) (profile.Student, job.Job) {
	t.Helper()
	ctx := context.Background()
	tag := uuid.NewString()[:8]

	cu, err := s.Users().Create(ctx, user.User{Email: "hr-" + tag + "@acme.test", Role: user.RoleCompany, IsActive: true})
	if err != nil {
		t.Fatalf("create company user: %v", err)
	}
	c, err := s.Companies().Upsert(ctx, profile.Company{UserID: cu.ID, CompanyName: "Acme " + tag})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	j, err := s.Jobs().Create(ctx, job.Job{
		CompanyID:          c.ID,
		Title:              "Backend Intern",
		Description:        "Go",
		JobType:            "internship",
		WorkMode:           job.WorkModeOnsite,
		Location:           "Jakarta",
		PositionsAvailable: 1,
		IsActive:           true,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	su, err := s.Users().Create(ctx, user.User{Email: "st-" + tag + "@uni.test", Role: user.RoleStudent, IsActive: true})
	if err != nil {
		t.Fatalf("create student user: %v", err)
	}
	st, err := s.Students().EnsureForUser(ctx, su.ID)
	if err != nil {
		t.Fatalf("ensure student: %v", err)
	}
	return st, j
}

func TestPostgres_ApplicationUniqueness(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	st, j := seedPair(t, s)

	first, err := s.Applications().Create(ctx, application.Application{StudentID: st.ID, JobID: j.ID, CoverLetter: "a", Status: application.StatusPending})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = s.Applications().Create(ctx, application.Application{StudentID: st.ID, JobID: j.ID, CoverLetter: "b", Status: application.StatusPending})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	first.Status = application.StatusWithdrawn
	if _, err := s.Applications().UpdateStatus(ctx, first); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := s.Applications().Create(ctx, application.Application{StudentID: st.ID, JobID: j.ID, CoverLetter: "c", Status: application.StatusPending}); err != nil {
		t.Fatalf("re-apply after withdrawal: %v", err)
	}
}

func TestPostgres_ApplicantCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, j := seedPair(t, s)

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WithinTx(ctx, func(tx repository.Store) error {
				if _, err := tx.Jobs().LockByID(ctx, j.ID); err != nil {
					return err
				}
				return tx.Jobs().IncrementApplicants(ctx, j.ID)
			})
			if err != nil {
				t.Errorf("increment: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := s.Jobs().GetByID(ctx, j.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ApplicantCount != n {
		t.Fatalf("expected %d, got %d", n, got.ApplicantCount)
	}

	for i := 0; i < n+2; i++ {
		if err := s.Jobs().DecrementApplicants(ctx, j.ID); err != nil {
			t.Fatalf("decrement: %v", err)
		}
	}
	got, _ = s.Jobs().GetByID(ctx, j.ID)
	if got.ApplicantCount != 0 {
		t.Fatalf("expected floor at 0, got %d", got.ApplicantCount)
	}
}

func TestPostgres_TxRollback(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_, j := seedPair(t, s)

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(tx repository.Store) error {
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
		t.Fatalf("expected rollback, got %d", got.ApplicantCount)
	}
}
