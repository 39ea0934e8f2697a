package usecase

import (
	"context"
	"time"

	"studentshub/internal/domain/event"
	"studentshub/internal/domain/job"
	"studentshub/internal/domain/matching"
	"studentshub/internal/domain/profile"
	"studentshub/internal/repository"
)

// EventPublisher fans domain events out in two phases. Publish runs inside
// the operation's transaction and fails it on error. Committed is called
// once the transaction is durable.
type EventPublisher interface {
	Publish(ctx context.Context, tx repository.Store, events ...event.Event) error
	Committed(ctx context.Context, events ...event.Event)
}

// RateLimiter reports whether another hit for key fits in the window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

type RateLimit struct {
	Limit  int
	Window time.Duration
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, repository.Store, ...event.Event) error { return nil }
func (nopPublisher) Committed(context.Context, ...event.Event)                       {}

func allow(ctx context.Context, l RateLimiter, key string, rl RateLimit) bool {
	if l == nil || rl.Limit <= 0 || rl.Window <= 0 {
		return true
	}
	return l.Allow(ctx, key, rl.Limit, rl.Window)
}

func matchScore(st profile.Student, j job.Job) matching.Result {
	return matching.Calculate(
		matching.Candidate{
			Skills:            st.Skills,
			Location:          st.Location,
			PreferredJobTypes: st.PreferredJobTypes,
		},
		matching.Opening{
			RequiredSkills: j.RequiredSkills,
			Location:       j.Location,
			JobType:        j.JobType,
			RemoteFriendly: j.IsRemoteFriendly(),
		},
	)
}
