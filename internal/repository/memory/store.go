package memory

import (
	"context"
	"sort"
	"sync"
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

// Store is an in-process repository.Store. Transactions are serialized
// and roll back by restoring a snapshot.
type Store struct {
	st   *state
	inTx bool
}

type state struct {
	mu   sync.Mutex
	txMu sync.Mutex
	last time.Time
	d    data
}

type data struct {
	users         map[uuid.UUID]user.User
	students      map[uuid.UUID]profile.Student
	companies     map[uuid.UUID]profile.Company
	jobs          map[uuid.UUID]job.Job
	saved         map[uuid.UUID]savedjob.SavedJob
	searches      map[uuid.UUID]savedsearch.SavedSearch
	applications  map[uuid.UUID]application.Application
	notifications map[uuid.UUID]notification.Notification
	messages      map[uuid.UUID]message.Message
}

func New() *Store {
	return &Store{st: &state{d: data{
		users:         map[uuid.UUID]user.User{},
		students:      map[uuid.UUID]profile.Student{},
		companies:     map[uuid.UUID]profile.Company{},
		jobs:          map[uuid.UUID]job.Job{},
		saved:         map[uuid.UUID]savedjob.SavedJob{},
		searches:      map[uuid.UUID]savedsearch.SavedSearch{},
		applications:  map[uuid.UUID]application.Application{},
		notifications: map[uuid.UUID]notification.Notification{},
		messages:      map[uuid.UUID]message.Message{},
	}}}
}

func (d data) clone() data {
	return data{
		users:         cloneMap(d.users),
		students:      cloneMap(d.students),
		companies:     cloneMap(d.companies),
		jobs:          cloneMap(d.jobs),
		saved:         cloneMap(d.saved),
		searches:      cloneMap(d.searches),
		applications:  cloneMap(d.applications),
		notifications: cloneMap(d.notifications),
		messages:      cloneMap(d.messages),
	}
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.st.txMu.Lock()
	defer s.st.txMu.Unlock()

	s.st.mu.Lock()
	snapshot := s.st.d.clone()
	s.st.mu.Unlock()

	restore := func() {
		s.st.mu.Lock()
		s.st.d = snapshot
		s.st.mu.Unlock()
	}
	defer func() {
		if p := recover(); p != nil {
			restore()
			panic(p)
		}
		if err != nil {
			restore()
		}
	}()

	return fn(&Store{st: s.st, inTx: true})
}

// lock must be held by callers of tick.
func (st *state) tick() time.Time {
	now := time.Now().UTC()
	if !now.After(st.last) {
		now = st.last.Add(time.Microsecond)
	}
	st.last = now
	return now
}

func (s *Store) lock() (*data, func()) {
	s.st.mu.Lock()
	return &s.st.d, s.st.mu.Unlock
}

func (s *Store) Users() repository.UserRepository                 { return userRepo{s} }
func (s *Store) Students() repository.StudentRepository           { return studentRepo{s} }
func (s *Store) Companies() repository.CompanyRepository          { return companyRepo{s} }
func (s *Store) Jobs() repository.JobRepository                   { return jobRepo{s} }
func (s *Store) SavedJobs() repository.SavedJobRepository         { return savedJobRepo{s} }
func (s *Store) SavedSearches() repository.SavedSearchRepository  { return savedSearchRepo{s} }
func (s *Store) Applications() repository.ApplicationRepository   { return applicationRepo{s} }
func (s *Store) Notifications() repository.NotificationRepository { return notificationRepo{s} }
func (s *Store) Messages() repository.MessageRepository           { return messageRepo{s} }

func paginate[T any](items []T, p domain.Page) []T {
	p = p.Normalize()
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func sortDesc[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return at(items[i]).After(at(items[j])) })
}

var _ repository.Store = (*Store)(nil)
