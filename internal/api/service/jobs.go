package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/internal/api/storage"
	"github.com/cuongbtq/job-board/internal/api/validation"
	"github.com/google/uuid"
)

// JobQuery is a public job listing request
type JobQuery struct {
	Search     string
	Department string
	Location   string
	Status     string
	Page       int
	Limit      int
}

type JobPage struct {
	Jobs       []model.JobSummary
	Pagination Pagination
}

// JobDetail is a job plus, for its owner only, the applications it received
type JobDetail struct {
	Job          *model.Job
	Applications []model.ApplicationDetail
}

type JobService struct {
	store  JobStore
	logger *slog.Logger
	now    func() time.Time
}

func NewJobService(store JobStore, logger *slog.Logger) *JobService {
	return &JobService{
		store:  store,
		logger: logger,
		now:    utcNow,
	}
}

func (s *JobService) Create(ctx context.Context, p *auth.Principal, in validation.JobInput) (*model.Job, error) {
	if err := requireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	in, err := validation.Job(in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	job := &model.Job{
		ID:        uuid.New().String(),
		CreatedBy: p.UserID,
		CreatedAt: now,
	}
	applyJobInput(job, in, now)

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("Job created",
		slog.String("job_id", job.ID),
		slog.String("created_by", job.CreatedBy),
		slog.String("status", string(job.Status)),
	)
	return job, nil
}

// Get is public; applications are attached only when p owns the job
func (s *JobService) Get(ctx context.Context, p *auth.Principal, jobID string) (*JobDetail, error) {
	if !validID(jobID) {
		return nil, domain.ErrNotFound
	}

	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	detail := &JobDetail{Job: job}
	if p.IsAdmin() && job.CreatedBy == p.UserID {
		detail.Applications, err = s.store.ListApplicationsByJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if detail.Applications == nil {
			detail.Applications = []model.ApplicationDetail{}
		}
	}
	return detail, nil
}

// Update overwrites every mutable field. An empty status keeps the current one.
func (s *JobService) Update(ctx context.Context, p *auth.Principal, jobID string, in validation.JobInput) (*model.Job, error) {
	job, err := s.ownedJob(ctx, p, jobID)
	if err != nil {
		return nil, err
	}

	if in.Status == "" {
		in.Status = job.Status
	}
	in, err = validation.Job(in)
	if err != nil {
		return nil, err
	}

	applyJobInput(job, in, s.now())
	if err := s.store.UpdateJob(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("Job updated", slog.String("job_id", job.ID))
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, p *auth.Principal, jobID string) error {
	job, err := s.ownedJob(ctx, p, jobID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteJob(ctx, job.ID, p.UserID); err != nil {
		return err
	}

	s.logger.Info("Job deleted", slog.String("job_id", job.ID))
	return nil
}

// SetStatus moves a job to any of ACTIVE, CLOSED or DRAFT
func (s *JobService) SetStatus(ctx context.Context, p *auth.Principal, jobID string, status domain.JobStatus) (*model.Job, error) {
	job, err := s.ownedJob(ctx, p, jobID)
	if err != nil {
		return nil, err
	}
	if err := validation.JobStatus(status); err != nil {
		return nil, err
	}
	return s.setStatus(ctx, job, status)
}

// ToggleStatus flips ACTIVE and CLOSED; a draft is published
func (s *JobService) ToggleStatus(ctx context.Context, p *auth.Principal, jobID string) (*model.Job, error) {
	job, err := s.ownedJob(ctx, p, jobID)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, job, job.Status.Toggled())
}

func (s *JobService) setStatus(ctx context.Context, job *model.Job, status domain.JobStatus) (*model.Job, error) {
	if err := s.store.UpdateJobStatus(ctx, job.ID, job.CreatedBy, status); err != nil {
		return nil, err
	}

	s.logger.Info("Job status changed",
		slog.String("job_id", job.ID),
		slog.String("from", string(job.Status)),
		slog.String("to", string(status)),
	)

	job.Status = status
	job.UpdatedAt = s.now()
	return job, nil
}

func (s *JobService) List(ctx context.Context, q JobQuery) (*JobPage, error) {
	status := domain.JobStatus(strings.ToUpper(strings.TrimSpace(q.Status)))
	if status == "" {
		status = domain.JobStatusActive
	}
	if status != domain.JobStatusAll && !status.Valid() {
		return nil, domain.FieldError("status", "Status must be one of ACTIVE, CLOSED, DRAFT or ALL")
	}

	page, err := pageRequest(q.Page, q.Limit)
	if err != nil {
		return nil, err
	}

	jobs, total, err := s.store.ListJobs(ctx, storage.JobFilter{
		Search:     strings.TrimSpace(q.Search),
		Department: strings.TrimSpace(q.Department),
		Location:   strings.TrimSpace(q.Location),
		Status:     status,
		Page:       page,
	})
	if err != nil {
		return nil, err
	}

	return &JobPage{
		Jobs:       jobs,
		Pagination: newPagination(page, total),
	}, nil
}

// ownedJob loads a job the ADMIN p may mutate
func (s *JobService) ownedJob(ctx context.Context, p *auth.Principal, jobID string) (*model.Job, error) {
	if err := requireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !validID(jobID) {
		return nil, domain.ErrNotFound
	}

	job, err := s.store.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != p.UserID {
		s.logger.Warn("Rejected mutation of job owned by another user",
			slog.String("job_id", jobID),
			slog.String("user_id", p.UserID),
		)
		return nil, domain.ErrForbidden
	}
	return job, nil
}

func applyJobInput(job *model.Job, in validation.JobInput, now time.Time) {
	job.Title = in.Title
	job.Department = in.Department
	job.Location = in.Location
	job.Salary = model.NullString(in.Salary)
	job.Description = in.Description
	job.Requirements = in.Requirements
	job.ResumeRequired = in.ResumeRequired
	job.CustomFields = domain.CustomFields(in.CustomFields)
	job.Status = in.Status
	job.UpdatedAt = now
}
