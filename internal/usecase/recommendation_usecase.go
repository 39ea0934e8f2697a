package usecase

import (
	"context"
	"sort"

	"studentshub/internal/domain"
	"studentshub/internal/domain/job"
	"studentshub/internal/repository"
)

const (
	defaultRecommendationLimit = 10
	maxRecommendationLimit     = 50
	// recommendationPool bounds how many active jobs are scored per call.
	recommendationPool = 200
)

type Recommendation struct {
	Job             job.Job
	MatchPercentage int
	MatchedSkills   []string
	MissingSkills   []string
}

type RecommendationUsecase interface {
	RecommendedJobs(ctx context.Context, caller Caller, limit int) ([]Recommendation, error)
}

type Recommendations struct {
	store repository.Store
}

func NewRecommendationUsecase(store repository.Store) *Recommendations {
	return &Recommendations{store: store}
}

// RecommendedJobs ranks active jobs the student has not applied to by
// match score, newest first among equal scores.
func (u *Recommendations) RecommendedJobs(ctx context.Context, caller Caller, limit int) ([]Recommendation, error) {
	st, err := studentFor(ctx, u.store, caller)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}
	if limit > maxRecommendationLimit {
		limit = maxRecommendationLimit
	}

	applied, err := u.store.Applications().ActiveJobIDs(ctx, st.ID)
	if err != nil {
		return nil, internal("load applied jobs", err)
	}

	out := make([]Recommendation, 0, limit)
	for page := 1; ; page++ {
		p := domain.Page{Page: page, Limit: maxRecommendationLimit}
		jobs, total, err := u.store.Jobs().ListActive(ctx, job.Filter{}, p)
		if err != nil {
			return nil, internal("list jobs", err)
		}
		for _, j := range jobs {
			if applied[j.ID] {
				continue
			}
			r := matchScore(st, j)
			out = append(out, Recommendation{
				Job:             j,
				MatchPercentage: r.Score,
				MatchedSkills:   r.MatchedSkills,
				MissingSkills:   r.MissingSkills,
			})
		}
		if len(jobs) == 0 || p.Offset()+len(jobs) >= total || p.Offset()+len(jobs) >= recommendationPool {
			break
		}
	}

	sort.SliceStable(out, func(i, k int) bool {
		return out[i].MatchPercentage > out[k].MatchPercentage
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
