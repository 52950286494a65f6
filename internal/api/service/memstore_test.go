package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/internal/api/storage"
	"github.com/cuongbtq/job-board/internal/events"
)

var errStoreDown = errors.New("store unavailable")

// memStore mimics the PostgreSQL storage: one application per (job, user),
// paired writes applied atomically, job deletes cascading and transition
// timestamps taken from its own clock while holding the lock.
type memStore struct {
	mu    sync.Mutex
	users map[string]*model.User
	jobs  map[string]*model.Job
	apps  map[string]*model.Application
	logs  []model.StatusLog
	seq   map[string]int
	now   func() time.Time

	failStatusLog bool
}

func newMemStore() *memStore {
	return &memStore{
		users: map[string]*model.User{},
		jobs:  map[string]*model.Job{},
		apps:  map[string]*model.Application{},
		seq:   map[string]int{},
		now:   newTickingClock().Now,
	}
}

func (m *memStore) addUser(u model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = &u
}

func (m *memStore) addJob(j model.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = &j
	m.seq[j.ID] = len(m.seq)
}

func (m *memStore) CreateJob(ctx context.Context, job *model.Job) error {
	m.addJob(*job)
	return nil
}

func (m *memStore) GetJobByID(ctx context.Context, jobID string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (m *memStore) UpdateJob(ctx context.Context, job *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.jobs[job.ID]
	if !ok || existing.CreatedBy != job.CreatedBy {
		return domain.ErrNotFound
	}
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *memStore) UpdateJobStatus(ctx context.Context, jobID, ownerID string, status domain.JobStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok || job.CreatedBy != ownerID {
		return domain.ErrNotFound
	}
	job.Status = status
	return nil
}

func (m *memStore) DeleteJob(ctx context.Context, jobID, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok || job.CreatedBy != ownerID {
		return domain.ErrNotFound
	}
	delete(m.jobs, jobID)

	for id, app := range m.apps {
		if app.JobID != jobID {
			continue
		}
		delete(m.apps, id)
		kept := m.logs[:0]
		for _, l := range m.logs {
			if l.ApplicationID != id {
				kept = append(kept, l)
			}
		}
		m.logs = kept
	}
	return nil
}

func (m *memStore) ListJobs(ctx context.Context, filter storage.JobFilter) ([]model.JobSummary, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	contains := func(haystack, needle string) bool {
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}

	var matched []model.JobSummary
	for _, job := range m.jobs {
		if filter.Status != "" && filter.Status != domain.JobStatusAll && job.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !contains(job.Title, filter.Search) && !contains(job.Description, filter.Search) {
			continue
		}
		if filter.Department != "" && !contains(job.Department, filter.Department) {
			continue
		}
		if filter.Location != "" && !contains(job.Location, filter.Location) {
			continue
		}

		summary := model.JobSummary{Job: *job}
		for _, app := range m.apps {
			if app.JobID == job.ID {
				summary.ApplicantCount++
			}
		}
		if poster, ok := m.users[job.CreatedBy]; ok {
			summary.PosterName = poster.Name
			summary.PosterEmail = poster.Email
		}
		matched = append(matched, summary)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return m.seq[matched[i].ID] > m.seq[matched[j].ID]
	})

	return paginate(matched, filter.Page), len(matched), nil
}

func (m *memStore) ListApplicationsByJob(ctx context.Context, jobID string) ([]model.ApplicationDetail, error) {
	apps, _, err := m.ListApplications(ctx, storage.ApplicationFilter{JobID: jobID, Page: storage.Page{Page: 1, Limit: 1 << 20}})
	return apps, err
}

func (m *memStore) CreateApplication(ctx context.Context, app *model.Application, log *model.StatusLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.apps {
		if existing.JobID == app.JobID && existing.UserID == app.UserID {
			return domain.ErrDuplicateApplication
		}
	}
	if m.failStatusLog {
		return errStoreDown
	}

	app.CreatedAt = m.now()
	app.UpdatedAt = app.CreatedAt
	log.CreatedAt = app.CreatedAt

	cp := *app
	m.apps[app.ID] = &cp
	m.seq[app.ID] = len(m.seq)
	m.logs = append(m.logs, *log)
	return nil
}

func (m *memStore) GetApplicationByID(ctx context.Context, applicationID string) (*model.ApplicationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[applicationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	detail := m.detail(app)
	return &detail, nil
}

func (m *memStore) UpdateApplicationStatus(ctx context.Context, log *model.StatusLog) (*model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	app, ok := m.apps[log.ApplicationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if m.failStatusLog {
		return nil, errStoreDown
	}

	log.CreatedAt = m.now()
	app.Status = log.Status
	app.UpdatedAt = log.CreatedAt
	m.logs = append(m.logs, *log)

	cp := *app
	return &cp, nil
}

func (m *memStore) ListApplications(ctx context.Context, filter storage.ApplicationFilter) ([]model.ApplicationDetail, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []model.ApplicationDetail
	for _, app := range m.apps {
		if filter.UserID != "" && app.UserID != filter.UserID {
			continue
		}
		if filter.JobID != "" && app.JobID != filter.JobID {
			continue
		}
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		detail := m.detail(app)
		detail.StatusLogs = m.logsFor(app.ID)
		matched = append(matched, detail)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return m.seq[matched[i].ID] > m.seq[matched[j].ID]
	})

	return paginate(matched, filter.Page), len(matched), nil
}

func (m *memStore) ListStatusLogs(ctx context.Context, applicationID string) ([]model.StatusLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logsFor(applicationID), nil
}

func (m *memStore) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *memStore) UpdateUserProfile(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = user.Name
	existing.Phone = user.Phone
	existing.Location = user.Location
	return nil
}

// applicationsFor counts stored applications for a (job, user) pair
func (m *memStore) applicationsFor(jobID, userID string) []model.Application {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Application
	for _, app := range m.apps {
		if app.JobID == jobID && app.UserID == userID {
			out = append(out, *app)
		}
	}
	return out
}

// logsFor returns an application's logs ordered like the SQL query:
// created_at descending, later inserts first on ties. Callers hold mu.
func (m *memStore) logsFor(applicationID string) []model.StatusLog {
	out := []model.StatusLog{}
	for i := len(m.logs) - 1; i >= 0; i-- {
		if m.logs[i].ApplicationID == applicationID {
			out = append(out, m.logs[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (m *memStore) detail(app *model.Application) model.ApplicationDetail {
	detail := model.ApplicationDetail{Application: *app}
	if job, ok := m.jobs[app.JobID]; ok {
		detail.JobTitle = job.Title
		detail.JobDepartment = job.Department
		detail.JobLocation = job.Location
		detail.JobOwner = job.CreatedBy
	}
	if user, ok := m.users[app.UserID]; ok {
		detail.ApplicantName = user.Name
		detail.ApplicantEmail = user.Email
	}
	return detail
}

func paginate[T any](rows []T, p storage.Page) []T {
	start := (p.Page - 1) * p.Limit
	if start >= len(rows) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.StatusChanged
	err    error
}

func (r *recordingPublisher) PublishStatusChanged(ctx context.Context, ev events.StatusChanged) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingPublisher) published() []events.StatusChanged {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.StatusChanged(nil), r.events...)
}

// tickingClock advances one second per reading
type tickingClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTickingClock() *tickingClock {
	return &tickingClock{now: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)}
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
