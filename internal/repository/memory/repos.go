package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"studentshub/internal/domain"
	"studentshub/internal/domain/application"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/message"
	"studentshub/internal/domain/notification"
	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/savedjob"
	"studentshub/internal/domain/savedsearch"
	"studentshub/internal/domain/user"
	"studentshub/internal/repository"

	"github.com/google/uuid"
)

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, repository.ErrNotFound)
}

func (d *data) enrichJob(j job.Job) job.Job {
	if c, ok := d.companies[j.CompanyID]; ok {
		j.CompanyName = c.CompanyName
	}
	return j
}

func (d *data) enrichApplication(a application.Application) application.Application {
	if j, ok := d.jobs[a.JobID]; ok {
		a.JobTitle = j.Title
		a.CompanyID = j.CompanyID
		if c, ok := d.companies[j.CompanyID]; ok {
			a.CompanyName = c.CompanyName
			a.CompanyUserID = c.UserID
		}
	}
	if st, ok := d.students[a.StudentID]; ok {
		a.StudentUserID = st.UserID
		if u, ok := d.users[st.UserID]; ok {
			a.StudentName = u.FullName()
			a.StudentEmail = u.Email
		}
	}
	return a
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u user.User) (user.User, error) {
	d, unlock := r.s.lock()
	defer unlock()

	u.Email = user.NormalizeEmail(u.Email)
	for _, existing := range d.users {
		if existing.Email == u.Email {
			return user.User{}, fmt.Errorf("create user: %w", repository.ErrDuplicate)
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := r.s.st.tick()
	u.CreatedAt, u.UpdatedAt = now, now
	d.users[u.ID] = u
	return u, nil
}

func (r userRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	d, unlock := r.s.lock()
	defer unlock()

	u, ok := d.users[id]
	if !ok {
		return user.User{}, notFound("get user")
	}
	return u, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	d, unlock := r.s.lock()
	defer unlock()

	email = user.NormalizeEmail(email)
	for _, u := range d.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, notFound("get user by email")
}

func (r userRepo) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	d, unlock := r.s.lock()
	defer unlock()

	u, ok := d.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.LastLoginAt = &at
	d.users[id] = u
	return nil
}

func (r userRepo) CountByRole(_ context.Context) (map[user.Role]int, error) {
	d, unlock := r.s.lock()
	defer unlock()

	out := map[user.Role]int{}
	for _, u := range d.users {
		out[u.Role]++
	}
	return out, nil
}

type studentRepo struct{ s *Store }

func (r studentRepo) GetByID(_ context.Context, id uuid.UUID) (profile.Student, error) {
	d, unlock := r.s.lock()
	defer unlock()

	st, ok := d.students[id]
	if !ok {
		return profile.Student{}, notFound("get student")
	}
	return st, nil
}

func (d *data) studentByUser(userID uuid.UUID) (profile.Student, bool) {
	for _, st := range d.students {
		if st.UserID == userID {
			return st, true
		}
	}
	return profile.Student{}, false
}

func (r studentRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Student, error) {
	d, unlock := r.s.lock()
	defer unlock()

	st, ok := d.studentByUser(userID)
	if !ok {
		return profile.Student{}, notFound("get student by user")
	}
	return st, nil
}

func (r studentRepo) EnsureForUser(_ context.Context, userID uuid.UUID) (profile.Student, error) {
	d, unlock := r.s.lock()
	defer unlock()

	if st, ok := d.studentByUser(userID); ok {
		return st, nil
	}
	if _, ok := d.users[userID]; !ok {
		return profile.Student{}, fmt.Errorf("ensure student: %w", repository.ErrReference)
	}
	now := r.s.st.tick()
	st := profile.Student{
		ID:                uuid.New(),
		UserID:            userID,
		Skills:            []profile.Skill{},
		Education:         []profile.EducationEntry{},
		WorkExperience:    []profile.WorkExperience{},
		PreferredJobTypes: []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	d.students[st.ID] = st
	return st, nil
}

func (r studentRepo) Upsert(_ context.Context, st profile.Student) (profile.Student, error) {
	d, unlock := r.s.lock()
	defer unlock()

	now := r.s.st.tick()
	if existing, ok := d.studentByUser(st.UserID); ok {
		st.ID = existing.ID
		st.CreatedAt = existing.CreatedAt
	} else {
		if _, ok := d.users[st.UserID]; !ok {
			return profile.Student{}, fmt.Errorf("upsert student: %w", repository.ErrReference)
		}
		if st.ID == uuid.Nil {
			st.ID = uuid.New()
		}
		st.CreatedAt = now
	}
	st.UpdatedAt = now
	d.students[st.ID] = st
	return st, nil
}

type companyRepo struct{ s *Store }

func (d *data) companyByUser(userID uuid.UUID) (profile.Company, bool) {
	for _, c := range d.companies {
		if c.UserID == userID {
			return c, true
		}
	}
	return profile.Company{}, false
}

func (r companyRepo) GetByID(_ context.Context, id uuid.UUID) (profile.Company, error) {
	d, unlock := r.s.lock()
	defer unlock()

	c, ok := d.companies[id]
	if !ok {
		return profile.Company{}, notFound("get company")
	}
	return c, nil
}

func (r companyRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Company, error) {
	d, unlock := r.s.lock()
	defer unlock()

	c, ok := d.companyByUser(userID)
	if !ok {
		return profile.Company{}, notFound("get company by user")
	}
	return c, nil
}

func (r companyRepo) Upsert(_ context.Context, c profile.Company) (profile.Company, error) {
	d, unlock := r.s.lock()
	defer unlock()

	now := r.s.st.tick()
	if existing, ok := d.companyByUser(c.UserID); ok {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
		c.VerificationStatus = existing.VerificationStatus
	} else {
		if _, ok := d.users[c.UserID]; !ok {
			return profile.Company{}, fmt.Errorf("upsert company: %w", repository.ErrReference)
		}
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		if c.VerificationStatus == "" {
			c.VerificationStatus = profile.VerificationUnverified
		}
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	d.companies[c.ID] = c
	return c, nil
}

func (r companyRepo) SetVerification(_ context.Context, id uuid.UUID, status profile.VerificationStatus) (profile.Company, error) {
	d, unlock := r.s.lock()
	defer unlock()

	c, ok := d.companies[id]
	if !ok {
		return profile.Company{}, notFound("set company verification")
	}
	c.VerificationStatus = status
	c.UpdatedAt = r.s.st.tick()
	d.companies[id] = c
	return c, nil
}

type jobRepo struct{ s *Store }

func (r jobRepo) Create(_ context.Context, j job.Job) (job.Job, error) {
	d, unlock := r.s.lock()
	defer unlock()

	if _, ok := d.companies[j.CompanyID]; !ok {
		return job.Job{}, fmt.Errorf("create job: %w", repository.ErrReference)
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	now := r.s.st.tick()
	j.CreatedAt, j.UpdatedAt = now, now
	j.ApplicantCount = 0
	d.jobs[j.ID] = j
	return d.enrichJob(j), nil
}

func (r jobRepo) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	d, unlock := r.s.lock()
	defer unlock()

	j, ok := d.jobs[id]
	if !ok {
		return job.Job{}, notFound("get job")
	}
	return d.enrichJob(j), nil
}

func (r jobRepo) LockByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	return r.GetByID(ctx, id)
}

func (r jobRepo) Update(_ context.Context, j job.Job) (job.Job, error) {
	d, unlock := r.s.lock()
	defer unlock()

	existing, ok := d.jobs[j.ID]
	if !ok {
		return job.Job{}, notFound("update job")
	}
	j.CompanyID = existing.CompanyID
	j.IsActive = existing.IsActive
	j.ApplicantCount = existing.ApplicantCount
	j.CreatedAt = existing.CreatedAt
	j.UpdatedAt = r.s.st.tick()
	d.jobs[j.ID] = j
	return d.enrichJob(j), nil
}

func (r jobRepo) SetActive(_ context.Context, id uuid.UUID, active bool) (job.Job, error) {
	d, unlock := r.s.lock()
	defer unlock()

	j, ok := d.jobs[id]
	if !ok {
		return job.Job{}, notFound("set job active")
	}
	j.IsActive = active
	j.UpdatedAt = r.s.st.tick()
	d.jobs[id] = j
	return d.enrichJob(j), nil
}

func matchesFilter(j job.Job, f job.Filter) bool {
	if !j.IsActive {
		return false
	}
	if terms := f.Terms(); len(terms) > 0 {
		hay := strings.ToLower(j.Title + "\n" + j.Description + "\n" + j.Requirements)
		hit := false
		for _, t := range terms {
			if strings.Contains(hay, strings.ToLower(t)) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if s := strings.TrimSpace(f.JobType); s != "" && j.JobType != s {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(f.Location)); s != "" && !strings.Contains(strings.ToLower(j.Location), s) {
		return false
	}
	if s := strings.TrimSpace(f.ExperienceLevel); s != "" && j.ExperienceLevel != s {
		return false
	}
	if f.CompanyID != nil && j.CompanyID != *f.CompanyID {
		return false
	}
	if f.RemoteOnly && !j.IsRemoteFriendly() {
		return false
	}
	return true
}

func (r jobRepo) ListActive(_ context.Context, f job.Filter, p domain.Page) ([]job.Job, int, error) {
	d, unlock := r.s.lock()
	defer unlock()

	items := make([]job.Job, 0)
	for _, j := range d.jobs {
		if matchesFilter(j, f) {
			items = append(items, d.enrichJob(j))
		}
	}
	sortDesc(items, func(j job.Job) time.Time { return j.CreatedAt })
	return paginate(items, p), len(items), nil
}

func (r jobRepo) ListByCompany(_ context.Context, companyID uuid.UUID) ([]job.Job, error) {
	d, unlock := r.s.lock()
	defer unlock()

	items := make([]job.Job, 0)
	for _, j := range d.jobs {
		if j.CompanyID == companyID {
			items = append(items, d.enrichJob(j))
		}
	}
	sortDesc(items, func(j job.Job) time.Time { return j.CreatedAt })
	return items, nil
}

func (r jobRepo) IncrementApplicants(_ context.Context, id uuid.UUID) error {
	d, unlock := r.s.lock()
	defer unlock()

	j, ok := d.jobs[id]
	if !ok {
		return notFound("increment applicants")
	}
	j.ApplicantCount++
	d.jobs[id] = j
	return nil
}

func (r jobRepo) DecrementApplicants(_ context.Context, id uuid.UUID) error {
	d, unlock := r.s.lock()
	defer unlock()

	j, ok := d.jobs[id]
	if !ok {
		return notFound("decrement applicants")
	}
	if j.ApplicantCount > 0 {
		j.ApplicantCount--
	}
	d.jobs[id] = j
	return nil
}

func (r jobRepo) Facets(_ context.Context) (job.Facets, error) {
	d, unlock := r.s.lock()
	defer unlock()

	counts := map[string]int{}
	locs := map[string]bool{}
	total := 0
	for _, j := range d.jobs {
		if !j.IsActive {
			continue
		}
		counts[j.JobType]++
		total++
		if j.Location != "" {
			locs[j.Location] = true
		}
	}

	out := job.Facets{JobTypes: []string{}, Locations: []string{}, TypeCounts: []job.TypeCount{}, TotalJobs: total}
	for t := range counts {
		out.JobTypes = append(out.JobTypes, t)
	}
	sort.Strings(out.JobTypes)
	for _, t := range out.JobTypes {
		out.TypeCounts = append(out.TypeCounts, job.TypeCount{JobType: t, Count: counts[t]})
	}
	for l := range locs {
		out.Locations = append(out.Locations, l)
	}
	sort.Strings(out.Locations)
	return out, nil
}

type savedJobRepo struct{ s *Store }

func (d *data) savedFor(studentID, jobID uuid.UUID) (savedjob.SavedJob, bool) {
	for _, sj := range d.saved {
		if sj.StudentID == studentID && sj.JobID == jobID {
			return sj, true
		}
	}
	return savedjob.SavedJob{}, false
}

func (d *data) withJob(sj savedjob.SavedJob) savedjob.SavedJob {
	sj.Job = d.enrichJob(d.jobs[sj.JobID])
	return sj
}

func (r savedJobRepo) Insert(_ context.Context, sj savedjob.SavedJob) (savedjob.SavedJob, bool, error) {
	d, unlock := r.s.lock()
	defer unlock()

	if existing, ok := d.savedFor(sj.StudentID, sj.JobID); ok {
		return d.withJob(existing), false, nil
	}
	if _, ok := d.jobs[sj.JobID]; !ok {
		return savedjob.SavedJob{}, false, fmt.Errorf("save job: %w", repository.ErrReference)
	}
	if sj.ID == uuid.Nil {
		sj.ID = uuid.New()
	}
	sj.SavedAt = r.s.st.tick()
	sj.Job = job.Job{}
	d.saved[sj.ID] = sj
	return d.withJob(sj), true, nil
}

func (r savedJobRepo) Get(_ context.Context, studentID, jobID uuid.UUID) (savedjob.SavedJob, error) {
	d, unlock := r.s.lock()
	defer unlock()

	sj, ok := d.savedFor(studentID, jobID)
	if !ok {
		return savedjob.SavedJob{}, notFound("get saved job")
	}
	return d.withJob(sj), nil
}

func (r savedJobRepo) Delete(_ context.Context, studentID, jobID uuid.UUID) (bool, error) {
	d, unlock := r.s.lock()
	defer unlock()

	sj, ok := d.savedFor(studentID, jobID)
	if !ok {
		return false, nil
	}
	delete(d.saved, sj.ID)
	return true, nil
}

func (r savedJobRepo) ListByStudent(_ context.Context, studentID uuid.UUID, order savedjob.SortOrder, activeOnly bool) ([]savedjob.SavedJob, error) {
	d, unlock := r.s.lock()
	defer unlock()

	items := make([]savedjob.SavedJob, 0)
	for _, sj := range d.saved {
		if sj.StudentID != studentID {
			continue
		}
		sj = d.withJob(sj)
		if activeOnly && !sj.Job.IsActive {
			continue
		}
		items = append(items, sj)
	}

	sortDesc(items, func(sj savedjob.SavedJob) time.Time { return sj.SavedAt })
	if order == savedjob.SortByDeadline {
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i].Job.ApplicationDeadline, items[j].Job.ApplicationDeadline
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	}
	return items, nil
}

func (r savedJobRepo) UpdateNotes(_ context.Context, studentID, jobID uuid.UUID, notes string) (savedjob.SavedJob, error) {
	d, unlock := r.s.lock()
	defer unlock()

	sj, ok := d.savedFor(studentID, jobID)
	if !ok {
		return savedjob.SavedJob{}, notFound("update saved job notes")
	}
	sj.Notes = notes
	d.saved[sj.ID] = sj
	return d.withJob(sj), nil
}

func (r savedJobRepo) DeleteMany(_ context.Context, studentID uuid.UUID, ids []uuid.UUID) (int, error) {
	d, unlock := r.s.lock()
	defer unlock()

	n := 0
	for _, id := range ids {
		if sj, ok := d.saved[id]; ok && sj.StudentID == studentID {
			delete(d.saved, id)
			n++
		}
	}
	return n, nil
}

type savedSearchRepo struct{ s *Store }

func (r savedSearchRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]savedsearch.SavedSearch, error) {
	d, unlock := r.s.lock()
	defer unlock()

	items := make([]savedsearch.SavedSearch, 0)
	for _, ss := range d.searches {
		if ss.UserID == userID {
			items = append(items, ss)
		}
	}
	sortDesc(items, func(ss savedsearch.SavedSearch) time.Time { return ss.LastSearched })
	return items, nil
}

func (r savedSearchRepo) Upsert(_ context.Context, ss savedsearch.SavedSearch) (savedsearch.SavedSearch, bool, error) {
	d, unlock := r.s.lock()
	defer unlock()

	for id, existing := range d.searches {
		if existing.UserID == ss.UserID && existing.Query == ss.Query {
			existing.SearchCount++
			existing.LastSearched = r.s.st.tick()
			existing.Filters = ss.Filters
			d.searches[id] = existing
			return existing, false, nil
		}
	}
	if _, ok := d.users[ss.UserID]; !ok {
		return savedsearch.SavedSearch{}, false, fmt.Errorf("save search: %w", repository.ErrReference)
	}
	if ss.ID == uuid.Nil {
		ss.ID = uuid.New()
	}
	now := r.s.st.tick()
	ss.SearchCount = 1
	ss.LastSearched, ss.CreatedAt = now, now
	d.searches[ss.ID] = ss
	return ss, true, nil
}

func (r savedSearchRepo) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	d, unlock := r.s.lock()
	defer unlock()

	ss, ok := d.searches[id]
	if !ok || ss.UserID != userID {
		return false, nil
	}
	delete(d.searches, id)
	return true, nil
}

type applicationRepo struct{ s *Store }

func (r applicationRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	d, unlock := r.s.lock()
	defer unlock()

	if _, ok := d.jobs[a.JobID]; !ok {
		return application.Application{}, fmt.Errorf("create application: %w", repository.ErrReference)
	}
	if _, ok := d.students[a.StudentID]; !ok {
		return application.Application{}, fmt.Errorf("create application: %w", repository.ErrReference)
	}
	for _, existing := range d.applications {
		if existing.StudentID == a.StudentID && existing.JobID == a.JobID && existing.Status != application.StatusWithdrawn {
			return application.Application{}, fmt.Errorf("create application: %w", repository.ErrDuplicate)
		}
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	now := r.s.st.tick()
	a.AppliedAt, a.UpdatedAt = now, now
	d.applications[a.ID] = a
	return d.enrichApplication(a), nil
}

func (r applicationRepo) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	d, unlock := r.s.lock()
	defer unlock()

	a, ok := d.applications[id]
	if !ok {
		return application.Application{}, notFound("get application")
	}
	return d.enrichApplication(a), nil
}

func (r applicationRepo) LockByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	return r.GetByID(ctx, id)
}

func (r applicationRepo) FindActive(_ context.Context, studentID, jobID uuid.UUID) (application.Application, error) {
	d, unlock := r.s.lock()
	defer unlock()

	for _, a := range d.applications {
		if a.StudentID == studentID && a.JobID == jobID && a.Status != application.StatusWithdrawn {
			return d.enrichApplication(a), nil
		}
	}
	return application.Application{}, notFound("find active application")
}

func (r applicationRepo) UpdateStatus(_ context.Context, a application.Application) (application.Application, error) {
	d, unlock := r.s.lock()
	defer unlock()

	existing, ok := d.applications[a.ID]
	if !ok {
		return application.Application{}, notFound("update application status")
	}
	existing.Status = a.Status
	existing.EmployerNotes = a.EmployerNotes
	existing.RejectionReason = a.RejectionReason
	existing.ReviewedAt = a.ReviewedAt
	existing.UpdatedAt = a.UpdatedAt
	d.applications[a.ID] = existing
	return d.enrichApplication(existing), nil
}

func (r applicationRepo) filter(p domain.Page, keep func(d *data, a application.Application) bool) ([]application.Application, int, error) {
	d, unlock := r.s.lock()
	defer unlock()

	items := make([]application.Application, 0)
	for _, a := range d.applications {
		if keep(d, a) {
			items = append(items, d.enrichApplication(a))
		}
	}
	sortDesc(items, func(a application.Application) time.Time { return a.AppliedAt })
	return paginate(items, p), len(items), nil
}

func (r applicationRepo) ListByJob(_ context.Context, jobID uuid.UUID, p domain.Page) ([]application.Application, int, error) {
	return r.filter(p, func(_ *data, a application.Application) bool { return a.JobID == jobID })
}

func (r applicationRepo) ListByStudent(_ context.Context, studentID uuid.UUID, status *application.Status, p domain.Page) ([]application.Application, int, error) {
	return r.filter(p, func(_ *data, a application.Application) bool {
		return a.StudentID == studentID && (status == nil || a.Status == *status)
	})
}

func (r applicationRepo) ListByCompany(_ context.Context, companyID uuid.UUID, p domain.Page) ([]application.Application, int, error) {
	return r.filter(p, func(d *data, a application.Application) bool {
		return d.jobs[a.JobID].CompanyID == companyID
	})
}

func (r applicationRepo) ActiveJobIDs(_ context.Context, studentID uuid.UUID) (map[uuid.UUID]bool, error) {
	d, unlock := r.s.lock()
	defer unlock()

	out := map[uuid.UUID]bool{}
	for _, a := range d.applications {
		if a.StudentID == studentID && a.Status != application.StatusWithdrawn {
			out[a.JobID] = true
		}
	}
	return out, nil
}

func (r applicationRepo) CountByStatus(_ context.Context) (application.StatusCounts, error) {
	d, unlock := r.s.lock()
	defer unlock()

	out := application.StatusCounts{}
	for _, a := range d.applications {
		out[a.Status]++
	}
	return out, nil
}

func (r applicationRepo) CountByStudent(_ context.Context, studentID uuid.UUID) (application.StatusCounts, error) {
	return r.countWhere(func(_ *data, a application.Application) bool { return a.StudentID == studentID }), nil
}

func (r applicationRepo) CountByCompany(_ context.Context, companyID uuid.UUID) (application.StatusCounts, error) {
	return r.countWhere(func(d *data, a application.Application) bool { return d.jobs[a.JobID].CompanyID == companyID }), nil
}

func (r applicationRepo) countWhere(keep func(d *data, a application.Application) bool) application.StatusCounts {
	d, unlock := r.s.lock()
	defer unlock()

	out := application.StatusCounts{}
	for _, a := range d.applications {
		if keep(d, a) {
			out[a.Status]++
		}
	}
	return out
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) Create(_ context.Context, n notification.Notification) (notification.Notification, error) {
	d, unlock := r.s.lock()
	defer unlock()

	if _, ok := d.users[n.UserID]; !ok {
		return notification.Notification{}, fmt.Errorf("create notification: %w", repository.ErrReference)
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Metadata == nil {
		n.Metadata = map[string]any{}
	}
	n.IsRead = false
	n.ReadAt = nil
	n.CreatedAt = r.s.st.tick()
	d.notifications[n.ID] = n
	return n, nil
}

func (r notificationRepo) ListByUser(_ context.Context, userID uuid.UUID, unreadOnly bool, p domain.Page) ([]notification.Notification, int, error) {
	d, unlock := r.s.lock()
	defer unlock()

	items := make([]notification.Notification, 0)
	for _, n := range d.notifications {
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		items = append(items, n)
	}
	sortDesc(items, func(n notification.Notification) time.Time { return n.CreatedAt })
	return paginate(items, p), len(items), nil
}

func (r notificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	d, unlock := r.s.lock()
	defer unlock()

	c := 0
	for _, n := range d.notifications {
		if n.UserID == userID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

func (r notificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID, at time.Time) (notification.Notification, error) {
	d, unlock := r.s.lock()
	defer unlock()

	n, ok := d.notifications[id]
	if !ok || n.UserID != userID {
		return notification.Notification{}, notFound("mark notification read")
	}
	if !n.IsRead {
		n.IsRead = true
		n.ReadAt = &at
		d.notifications[id] = n
	}
	return n, nil
}

func (r notificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	d, unlock := r.s.lock()
	defer unlock()

	var c int64
	for id, n := range d.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &at
			d.notifications[id] = n
			c++
		}
	}
	return c, nil
}

type messageRepo struct{ s *Store }

func (r messageRepo) Create(_ context.Context, m message.Message) (message.Message, error) {
	d, unlock := r.s.lock()
	defer unlock()

	if _, ok := d.applications[m.ApplicationID]; !ok {
		return message.Message{}, fmt.Errorf("create message: %w", repository.ErrReference)
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.SentAt = r.s.st.tick()
	d.messages[m.ID] = m
	return m, nil
}

func (r messageRepo) ListByApplication(_ context.Context, applicationID uuid.UUID, p domain.Page) ([]message.Message, int, error) {
	d, unlock := r.s.lock()
	defer unlock()

	items := make([]message.Message, 0)
	for _, m := range d.messages {
		if m.ApplicationID == applicationID {
			items = append(items, m)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].SentAt.Before(items[j].SentAt) })
	return paginate(items, p), len(items), nil
}

func (r messageRepo) MarkReadFor(_ context.Context, applicationID, readerID uuid.UUID) (int64, error) {
	d, unlock := r.s.lock()
	defer unlock()

	var c int64
	for id, m := range d.messages {
		if m.ApplicationID == applicationID && m.SenderID != readerID && !m.IsRead {
			m.IsRead = true
			d.messages[id] = m
			c++
		}
	}
	return c, nil
}
