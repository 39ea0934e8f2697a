package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"studentshub/internal/domain"
	"studentshub/internal/domain/application"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/notification"
	"studentshub/internal/domain/user"
	"studentshub/internal/infrastructure/ratelimit"
	"studentshub/internal/repository"

	"github.com/google/uuid"
)

func TestApply_Success(t *testing.T) {
	f := newFixture(t)

	a := f.apply(t, f.student, f.job.ID)
	if a.Status != application.StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}
	if a.ResumeURL != f.profile.ResumeURL {
		t.Fatalf("expected profile resume snapshot, got %q", a.ResumeURL)
	}
	if a.MatchPercentage == 0 {
		t.Fatalf("expected a match score snapshot")
	}
	if got := f.applicantCount(t, f.job); got != 1 {
		t.Fatalf("expected applicant count 1, got %d", got)
	}

	page, _, err := f.store.Notifications().ListByUser(context.Background(), f.company.UserID, false, domain.Page{})
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(page) != 1 || page[0].Type != notification.TypeApplicationSubmitted {
		t.Fatalf("expected one submitted notification, got %+v", page)
	}
}

func TestApply_ResumeOverride(t *testing.T) {
	f := newFixture(t)
	a, err := f.applications().Apply(context.Background(), f.student, ApplyInput{
		JobID:       f.job.ID,
		CoverLetter: "hello",
		ResumeURL:   " https://cv.test/tailored.pdf ",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.ResumeURL != "https://cv.test/tailored.pdf" {
		t.Fatalf("unexpected resume %q", a.ResumeURL)
	}
}

// racedStore hides existing applications from the in-transaction check,
// as when a concurrent apply commits between the check and the insert.
type racedStore struct{ repository.Store }

func (s racedStore) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	return s.Store.WithinTx(ctx, func(tx repository.Store) error { return fn(racedTx{tx}) })
}

type racedTx struct{ repository.Store }

func (t racedTx) Applications() repository.ApplicationRepository {
	return staleApplications{t.Store.Applications()}
}

type staleApplications struct{ repository.ApplicationRepository }

func (staleApplications) FindActive(context.Context, uuid.UUID, uuid.UUID) (application.Application, error) {
	return application.Application{}, repository.ErrNotFound
}

func TestApply_DuplicateCaughtByConstraint(t *testing.T) {
	f := newFixture(t)
	first := f.apply(t, f.student, f.job.ID)

	uc := NewApplicationUsecase(racedStore{f.store}, f.events, nil, RateLimit{})
	_, err := uc.Apply(context.Background(), f.student, ApplyInput{JobID: f.job.ID, CoverLetter: "again"})
	var dup *DuplicateApplicationError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateApplicationError, got %v", err)
	}
	if dup.ApplicationID != first.ID.String() {
		t.Fatalf("expected existing id %s, got %s", first.ID, dup.ApplicationID)
	}
	if got := f.applicantCount(t, f.job); got != 1 {
		t.Fatalf("rejected insert must not bump counter, got %d", got)
	}
}

func TestApply_Duplicate(t *testing.T) {
	f := newFixture(t)
	first := f.apply(t, f.student, f.job.ID)

	_, err := f.applications().Apply(context.Background(), f.student, ApplyInput{JobID: f.job.ID, CoverLetter: "again"})
	var dup *DuplicateApplicationError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateApplicationError, got %v", err)
	}
	if dup.ApplicationID != first.ID.String() {
		t.Fatalf("expected existing id %s, got %s", first.ID, dup.ApplicationID)
	}
	if !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication in chain")
	}
	if got := f.applicantCount(t, f.job); got != 1 {
		t.Fatalf("duplicate must not bump counter, got %d", got)
	}
}

func TestApply_AfterWithdrawal(t *testing.T) {
	f := newFixture(t)
	first := f.apply(t, f.student, f.job.ID)
	if _, err := f.applications().Withdraw(context.Background(), f.student, first.ID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	second := f.apply(t, f.student, f.job.ID)
	if second.ID == first.ID {
		t.Fatalf("expected a new application")
	}
	if got := f.applicantCount(t, f.job); got != 1 {
		t.Fatalf("expected applicant count 1, got %d", got)
	}
}

func TestApply_JobUnavailable(t *testing.T) {
	f := newFixture(t)
	closed := f.newJob(t, f.firm, func(j *job.Job) { j.IsActive = false })
	expired := f.newJob(t, f.firm, func(j *job.Job) { j.ApplicationDeadline = daysFromNow(-1) })

	for name, id := range map[string]uuid.UUID{"closed": closed.ID, "expired": expired.ID} {
		_, err := f.applications().Apply(context.Background(), f.student, ApplyInput{JobID: id, CoverLetter: "hi"})
		if !errors.Is(err, ErrJobUnavailable) {
			t.Fatalf("%s: expected ErrJobUnavailable, got %v", name, err)
		}
		if errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: existing job must not read as missing", name)
		}
	}
}

func TestApply_MissingJob(t *testing.T) {
	f := newFixture(t)
	_, err := f.applications().Apply(context.Background(), f.student, ApplyInput{JobID: uuid.New(), CoverLetter: "hi"})
	if !errors.Is(err, ErrJobUnavailable) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected unavailable+not found, got %v", err)
	}
}

func TestApply_BlankCoverLetter(t *testing.T) {
	f := newFixture(t)
	_, err := f.applications().Apply(context.Background(), f.student, ApplyInput{JobID: f.job.ID, CoverLetter: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if got := f.applicantCount(t, f.job); got != 0 {
		t.Fatalf("expected no counter change, got %d", got)
	}
}

func TestApply_OnlyStudents(t *testing.T) {
	f := newFixture(t)
	_, err := f.applications().Apply(context.Background(), f.company, ApplyInput{JobID: f.job.ID, CoverLetter: "hi"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	_, err = f.applications().Apply(context.Background(), Caller{}, ApplyInput{JobID: f.job.ID, CoverLetter: "hi"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestApply_RateLimited(t *testing.T) {
	f := newFixture(t)
	uc := NewApplicationUsecase(f.store, f.events, ratelimit.NewMemoryLimiter(), RateLimit{Limit: 2, Window: time.Minute})
	ctx := context.Background()

	var last error
	for i := 0; i < 3; i++ {
		_, last = uc.Apply(ctx, f.student, ApplyInput{JobID: f.job.ID, CoverLetter: "hi"})
	}
	if !errors.Is(last, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited on third attempt, got %v", last)
	}
}

func TestApply_ConcurrentStudents(t *testing.T) {
	f := newFixture(t)
	const n = 20
	callers := make([]Caller, n)
	for i := range callers {
		callers[i], _ = f.newStudent(t)
	}

	uc := f.applications()
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, c := range callers {
		wg.Add(1)
		go func(c Caller) {
			defer wg.Done()
			_, err := uc.Apply(context.Background(), c, ApplyInput{JobID: f.job.ID, CoverLetter: "hi"})
			errs <- err
		}(c)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if got := f.applicantCount(t, f.job); got != n {
		t.Fatalf("expected applicant count %d, got %d", n, got)
	}
}

func TestApply_ConcurrentSameStudent(t *testing.T) {
	f := newFixture(t)
	const n = 10
	uc := f.applications()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		dups int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Apply(context.Background(), f.student, ApplyInput{JobID: f.job.ID, CoverLetter: "hi"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrDuplicateApplication):
				dups++
			default:
				t.Errorf("unexpected err: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || dups != n-1 {
		t.Fatalf("expected 1 success and %d duplicates, got %d and %d", n-1, ok, dups)
	}
	if got := f.applicantCount(t, f.job); got != 1 {
		t.Fatalf("expected applicant count 1, got %d", got)
	}
}

func TestUpdateStatus_Progression(t *testing.T) {
	f := newFixture(t)
	a := f.apply(t, f.student, f.job.ID)
	uc := f.applications()
	ctx := context.Background()

	path := []application.Status{
		application.StatusReviewing,
		application.StatusShortlisted,
		application.StatusInterviewScheduled,
		application.StatusHired,
	}
	for _, to := range path {
		got, err := uc.UpdateStatus(ctx, f.company, a.ID, StatusUpdateInput{Status: string(to)})
		if err != nil {
			t.Fatalf("move to %s: %v", to, err)
		}
		if got.Status != to {
			t.Fatalf("expected %s, got %s", to, got.Status)
		}
		if got.ReviewedAt == nil {
			t.Fatalf("expected reviewed_at once past pending")
		}
	}
	if got := f.unread(t, f.student); got != len(path) {
		t.Fatalf("expected %d student notifications, got %d", len(path), got)
	}

	_, err := uc.UpdateStatus(ctx, f.company, a.ID, StatusUpdateInput{Status: "rejected"})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("terminal state must not move, got %v", err)
	}
}

func TestUpdateStatus_RejectsSkips(t *testing.T) {
	f := newFixture(t)
	a := f.apply(t, f.student, f.job.ID)

	for _, to := range []string{"shortlisted", "hired", "withdrawn", "pending"} {
		_, err := f.applications().UpdateStatus(context.Background(), f.company, a.ID, StatusUpdateInput{Status: to})
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("pending -> %s: expected ErrInvalidTransition, got %v", to, err)
		}
	}
	_, err := f.applications().UpdateStatus(context.Background(), f.company, a.ID, StatusUpdateInput{Status: "archived"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	if got := f.unread(t, f.student); got != 0 {
		t.Fatalf("failed transitions must not notify, got %d", got)
	}
}

func TestUpdateStatus_RejectionReason(t *testing.T) {
	f := newFixture(t)
	a := f.apply(t, f.student, f.job.ID)
	uc := f.applications()
	ctx := context.Background()

	notes := "strong Go, weak SQL"
	for _, to := range []string{"reviewing", "shortlisted", "interview_scheduled"} {
		if _, err := uc.UpdateStatus(ctx, f.company, a.ID, StatusUpdateInput{Status: to, Notes: &notes, RejectionReason: "ignored"}); err != nil {
			t.Fatalf("move to %s: %v", to, err)
		}
	}
	got, err := uc.UpdateStatus(ctx, f.company, a.ID, StatusUpdateInput{Status: "rejected", RejectionReason: " position filled "})
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.RejectionReason != "position filled" {
		t.Fatalf("unexpected rejection reason %q", got.RejectionReason)
	}
	if got.EmployerNotes != notes {
		t.Fatalf("expected notes kept, got %q", got.EmployerNotes)
	}
}

func TestUpdateStatus_Authorization(t *testing.T) {
	f := newFixture(t)
	a := f.apply(t, f.student, f.job.ID)
	other, _ := f.newCompany(t, "Globex")
	ctx := context.Background()

	if _, err := f.applications().UpdateStatus(ctx, other, a.ID, StatusUpdateInput{Status: "reviewing"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other company: expected ErrForbidden, got %v", err)
	}
	if _, err := f.applications().UpdateStatus(ctx, f.student, a.ID, StatusUpdateInput{Status: "reviewing"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("student: expected ErrForbidden, got %v", err)
	}
	if _, err := f.applications().UpdateStatus(ctx, f.company, uuid.New(), StatusUpdateInput{Status: "reviewing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: expected ErrNotFound, got %v", err)
	}

	admin := Caller{UserID: uuid.New(), Role: user.RoleAdmin}
	if _, err := f.applications().UpdateStatus(ctx, admin, a.ID, StatusUpdateInput{Status: "reviewing"}); err != nil {
		t.Fatalf("admin: unexpected err: %v", err)
	}
}

func TestWithdraw(t *testing.T) {
	f := newFixture(t)
	a := f.apply(t, f.student, f.job.ID)
	uc := f.applications()
	ctx := context.Background()

	other, _ := f.newStudent(t)
	if _, err := uc.Withdraw(ctx, other, a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner: expected ErrForbidden, got %v", err)
	}
	if _, err := uc.Withdraw(ctx, f.company, a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("company: expected ErrForbidden, got %v", err)
	}

	got, err := uc.Withdraw(ctx, f.student, a.ID)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if got.Status != application.StatusWithdrawn {
		t.Fatalf("expected withdrawn, got %s", got.Status)
	}
	if _, err := uc.Withdraw(ctx, f.student, a.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second withdraw: expected ErrInvalidTransition, got %v", err)
	}
	if got := f.applicantCount(t, f.job); got != 0 {
		t.Fatalf("expected counter back to 0, got %d", got)
	}
	// submitted + withdrawn
	if got := f.unread(t, f.company); got != 2 {
		t.Fatalf("expected 2 company notifications, got %d", got)
	}
}

func TestWithdraw_CounterFloor(t *testing.T) {
	f := newFixture(t)
	a := f.apply(t, f.student, f.job.ID)
	ctx := context.Background()

	// Simulate drift: the counter was reset behind our back.
	if err := f.store.Jobs().DecrementApplicants(ctx, f.job.ID); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if _, err := f.applications().Withdraw(ctx, f.student, a.ID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if got := f.applicantCount(t, f.job); got != 0 {
		t.Fatalf("expected counter floored at 0, got %d", got)
	}
}

func TestGetApplication_Visibility(t *testing.T) {
	f := newFixture(t)
	a := f.apply(t, f.student, f.job.ID)
	uc := f.applications()
	ctx := context.Background()

	for name, c := range map[string]Caller{"student": f.student, "company": f.company} {
		if _, err := uc.GetApplication(ctx, c, a.ID); err != nil {
			t.Fatalf("%s: unexpected err: %v", name, err)
		}
	}
	stranger, _ := f.newStudent(t)
	if _, err := uc.GetApplication(ctx, stranger, a.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestListMine_StatusFilter(t *testing.T) {
	f := newFixture(t)
	second := f.newJob(t, f.firm, func(j *job.Job) { j.Title = "Data Intern" })
	a := f.apply(t, f.student, f.job.ID)
	f.apply(t, f.student, second.ID)
	uc := f.applications()
	ctx := context.Background()

	if _, err := uc.UpdateStatus(ctx, f.company, a.ID, StatusUpdateInput{Status: "reviewing"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	all, err := uc.ListMine(ctx, f.student, "", domain.Page{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("expected 2, got %d", all.Total)
	}
	reviewing, err := uc.ListMine(ctx, f.student, "reviewing", domain.Page{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if reviewing.Total != 1 || reviewing.Items[0].ID != a.ID {
		t.Fatalf("unexpected filtered list %+v", reviewing)
	}
	if _, err := uc.ListMine(ctx, f.student, "bogus", domain.Page{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListForJob_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	f.apply(t, f.student, f.job.ID)
	other, _ := f.newCompany(t, "Globex")
	ctx := context.Background()

	page, err := f.applications().ListForJob(ctx, f.company, f.job.ID, domain.Page{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1, got %d", page.Total)
	}
	if _, err := f.applications().ListForJob(ctx, other, f.job.ID, domain.Page{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestListForStudent(t *testing.T) {
	f := newFixture(t)
	f.apply(t, f.student, f.job.ID)
	ctx := context.Background()

	page, err := f.applications().ListForStudent(ctx, f.student, f.profile.ID, "", domain.Page{})
	if err != nil || page.Total != 1 {
		t.Fatalf("expected own list, got %+v err=%v", page, err)
	}
	other, _ := f.newStudent(t)
	if _, err := f.applications().ListForStudent(ctx, other, f.profile.ID, "", domain.Page{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
