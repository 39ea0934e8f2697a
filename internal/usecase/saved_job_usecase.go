package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"studentshub/internal/domain/profile"
	"studentshub/internal/domain/savedjob"
	"studentshub/internal/repository"

	"github.com/google/uuid"
)

// SavedJobView is a bookmark with the values derived at read time.
type SavedJobView struct {
	savedjob.SavedJob

	DaysLeft        *int
	IsUrgent        bool
	HasApplied      bool
	MatchPercentage int
}

type SavedJobUsecase interface {
	Save(ctx context.Context, caller Caller, jobID uuid.UUID, notes string) (SavedJobView, bool, error)
	Unsave(ctx context.Context, caller Caller, jobID uuid.UUID) error
	BulkUnsave(ctx context.Context, caller Caller, ids []uuid.UUID) (int, error)
	List(ctx context.Context, caller Caller, order savedjob.SortOrder) ([]SavedJobView, error)
	IsSaved(ctx context.Context, caller Caller, jobID uuid.UUID) (bool, *SavedJobView, error)
	UpdateNotes(ctx context.Context, caller Caller, jobID uuid.UUID, notes string) (SavedJobView, error)
	Upcoming(ctx context.Context, caller Caller) ([]SavedJobView, error)
	Stats(ctx context.Context, caller Caller) (savedjob.Stats, error)
}

type SavedJobs struct {
	store repository.Store
	now   func() time.Time
}

func NewSavedJobUsecase(store repository.Store) *SavedJobs {
	return &SavedJobs{store: store, now: time.Now}
}

func (u *SavedJobs) Save(ctx context.Context, caller Caller, jobID uuid.UUID, notes string) (SavedJobView, bool, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return SavedJobView{}, false, err
	}
	if _, err := u.store.Jobs().GetByID(ctx, jobID); err != nil {
		return SavedJobView{}, false, storeErr("load job", "job", err)
	}

	saved, created, err := u.store.SavedJobs().Insert(ctx, savedjob.SavedJob{
		StudentID: st.ID,
		JobID:     jobID,
		Notes:     strings.TrimSpace(notes),
	})
	if err != nil {
		if errors.Is(err, repository.ErrReference) {
			return SavedJobView{}, false, notFound("job")
		}
		return SavedJobView{}, false, internal("save job", err)
	}

	applied, err := u.store.Applications().ActiveJobIDs(ctx, st.ID)
	if err != nil {
		return SavedJobView{}, false, internal("load applied jobs", err)
	}
	return u.view(saved, st, applied), created, nil
}

func (u *SavedJobs) Unsave(ctx context.Context, caller Caller, jobID uuid.UUID) error {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return err
	}
	if _, err := u.store.SavedJobs().Delete(ctx, st.ID, jobID); err != nil {
		return internal("unsave job", err)
	}
	return nil
}

func (u *SavedJobs) List(ctx context.Context, caller Caller, order savedjob.SortOrder) ([]SavedJobView, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return nil, err
	}
	return u.list(ctx, st, order, true)
}

func (u *SavedJobs) IsSaved(ctx context.Context, caller Caller, jobID uuid.UUID) (bool, *SavedJobView, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return false, nil, err
	}
	s, err := u.store.SavedJobs().Get(ctx, st.ID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil, nil
		}
		return false, nil, internal("check saved job", err)
	}
	applied, err := u.store.Applications().ActiveJobIDs(ctx, st.ID)
	if err != nil {
		return false, nil, internal("load applied jobs", err)
	}
	v := u.view(s, st, applied)
	return true, &v, nil
}

func (u *SavedJobs) UpdateNotes(ctx context.Context, caller Caller, jobID uuid.UUID, notes string) (SavedJobView, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return SavedJobView{}, err
	}
	s, err := u.store.SavedJobs().UpdateNotes(ctx, st.ID, jobID, strings.TrimSpace(notes))
	if err != nil {
		return SavedJobView{}, storeErr("update saved job notes", "saved job", err)
	}
	applied, err := u.store.Applications().ActiveJobIDs(ctx, st.ID)
	if err != nil {
		return SavedJobView{}, internal("load applied jobs", err)
	}
	return u.view(s, st, applied), nil
}

func (u *SavedJobs) Upcoming(ctx context.Context, caller Caller) ([]SavedJobView, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return nil, err
	}
	all, err := u.list(ctx, st, savedjob.SortByDeadline, true)
	if err != nil {
		return nil, err
	}

	out := make([]SavedJobView, 0, len(all))
	for _, v := range all {
		if savedjob.IsUpcoming(v.DaysLeft) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (u *SavedJobs) Stats(ctx context.Context, caller Caller) (savedjob.Stats, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return savedjob.Stats{}, err
	}
	saved, err := u.store.SavedJobs().ListByStudent(ctx, st.ID, savedjob.SortBySavedAt, false)
	if err != nil {
		return savedjob.Stats{}, internal("list saved jobs", err)
	}
	applied, err := u.store.Applications().ActiveJobIDs(ctx, st.ID)
	if err != nil {
		return savedjob.Stats{}, internal("load applied jobs", err)
	}
	return savedjob.ComputeStats(saved, applied, u.now()), nil
}

func (u *SavedJobs) list(ctx context.Context, st profile.Student, order savedjob.SortOrder, activeOnly bool) ([]SavedJobView, error) {
	saved, err := u.store.SavedJobs().ListByStudent(ctx, st.ID, order, activeOnly)
	if err != nil {
		return nil, internal("list saved jobs", err)
	}
	applied, err := u.store.Applications().ActiveJobIDs(ctx, st.ID)
	if err != nil {
		return nil, internal("load applied jobs", err)
	}

	out := make([]SavedJobView, 0, len(saved))
	for _, s := range saved {
		out = append(out, u.view(s, st, applied))
	}
	return out, nil
}

func (u *SavedJobs) view(s savedjob.SavedJob, st profile.Student, applied map[uuid.UUID]bool) SavedJobView {
	left := savedjob.DaysLeft(s.Job.ApplicationDeadline, u.now())
	return SavedJobView{
		SavedJob:        s,
		DaysLeft:        left,
		IsUrgent:        savedjob.IsUrgent(left) && !savedjob.IsExpired(left),
		HasApplied:      applied[s.JobID],
		MatchPercentage: matchScore(st, s.Job).Score,
	}
}

// MaxBulkUnsave caps how many bookmarks one bulk request may remove.
const MaxBulkUnsave = 100

// BulkUnsave removes the caller's bookmarks by saved-job id and reports how
// many were removed. Unknown ids and ids of other students are skipped.
func (u *SavedJobs) BulkUnsave(ctx context.Context, caller Caller, ids []uuid.UUID) (int, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, invalid("saved_job_ids is required")
	}
	if len(ids) > MaxBulkUnsave {
		return 0, invalid("at most %d saved_job_ids per request", MaxBulkUnsave)
	}

	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}

	n, err := u.store.SavedJobs().DeleteMany(ctx, st.ID, unique)
	if err != nil {
		return 0, internal("bulk unsave", err)
	}
	return n, nil
}
