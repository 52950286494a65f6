package service

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/internal/api/storage"
	"github.com/cuongbtq/job-board/internal/api/validation"
	"github.com/cuongbtq/job-board/internal/events"
	"github.com/cuongbtq/job-board/internal/metrics"
	"github.com/google/uuid"
)

const maxNotesLength = 2000

// ApplicationQuery is an application listing request
type ApplicationQuery struct {
	JobID  string
	Status string
	Page   int
	Limit  int
}

type ApplicationPage struct {
	Applications []model.ApplicationDetail
	Pagination   Pagination
}

type ApplicationService struct {
	store  ApplicationStore
	events EventPublisher
	logger *slog.Logger
}

// NewApplicationService returns the service; publisher may be nil, in which
// case no status events are emitted.
func NewApplicationService(store ApplicationStore, publisher EventPublisher, logger *slog.Logger) *ApplicationService {
	return &ApplicationService{
		store:  store,
		events: publisher,
		logger: logger,
	}
}

// Submit creates a PENDING application and its first status log. A second
// submission for the same job and user fails with ErrDuplicateApplication.
func (s *ApplicationService) Submit(ctx context.Context, p *auth.Principal, in validation.ApplicationInput) (*model.Application, error) {
	if err := requireRole(p, domain.RoleUser); err != nil {
		return nil, err
	}

	in, err := validation.Application(in)
	if err != nil {
		return nil, err
	}

	job, err := s.store.GetJobByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusActive {
		return nil, domain.FieldError("jobId", "This job is not accepting applications")
	}

	verr := domain.NewValidationError()
	answers, err := validation.Answers(job.CustomFields, in.Answers)
	if err := verr.Merge(err); err != nil {
		return nil, err
	}
	if job.ResumeRequired && in.ResumeURL == "" {
		verr.Add("resumeUrl", "Resume is required for this job")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	app := &model.Application{
		ID:        uuid.New().String(),
		JobID:     job.ID,
		UserID:    p.UserID,
		Answers:   answers,
		ResumeURL: model.NullString(in.ResumeURL),
		Status:    domain.ApplicationStatusPending,
	}
	log := &model.StatusLog{
		ID:            uuid.New().String(),
		ApplicationID: app.ID,
		Status:        domain.ApplicationStatusPending,
	}

	if err := s.store.CreateApplication(ctx, app, log); err != nil {
		return nil, err
	}

	metrics.ApplicationsSubmitted.Inc()
	s.logger.Info("Application submitted",
		slog.String("application_id", app.ID),
		slog.String("job_id", app.JobID),
		slog.String("user_id", app.UserID),
	)

	s.publish(ctx, app, log)
	return app, nil
}

// List pages through applications, newest first. USER callers only ever see
// their own applications; ADMIN callers see all of them.
func (s *ApplicationService) List(ctx context.Context, p *auth.Principal, q ApplicationQuery) (*ApplicationPage, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	page, pageErr := pageRequest(q.Page, q.Limit)
	filter := storage.ApplicationFilter{
		JobID: strings.TrimSpace(q.JobID),
		Page:  page,
	}

	verr := domain.NewValidationError()
	if err := verr.Merge(pageErr); err != nil {
		return nil, err
	}
	if filter.JobID != "" && !validID(filter.JobID) {
		verr.Add("jobId", "Job ID must be a valid UUID")
	}
	if q.Status != "" {
		filter.Status = domain.ApplicationStatus(strings.ToUpper(strings.TrimSpace(q.Status)))
		if !filter.Status.Valid() {
			verr.Add("status", "Status must be one of PENDING, ACCEPTED, REJECTED or ON_HOLD")
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if p.Role == domain.RoleUser {
		filter.UserID = p.UserID
	}

	apps, total, err := s.store.ListApplications(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ApplicationPage{
		Applications: apps,
		Pagination:   newPagination(filter.Page, total),
	}, nil
}

// Transition sets an application's status and appends a log row, even when
// the status does not change. Only the ADMIN who owns the job may do this.
func (s *ApplicationService) Transition(ctx context.Context, p *auth.Principal, applicationID string, status domain.ApplicationStatus, notes string) (*model.Application, error) {
	if err := requireRole(p, domain.RoleAdmin); err != nil {
		return nil, err
	}

	notes = strings.TrimSpace(notes)
	verr := domain.NewValidationError()
	if !status.Valid() {
		verr.Add("status", "Status must be one of PENDING, ACCEPTED, REJECTED or ON_HOLD")
	}
	if utf8.RuneCountInString(notes) > maxNotesLength {
		verr.Add("notes", "Notes must be at most 2000 characters")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	current, err := s.application(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if current.JobOwner != p.UserID {
		s.logger.Warn("Rejected status change on job owned by another user",
			slog.String("application_id", applicationID),
			slog.String("user_id", p.UserID),
		)
		return nil, domain.ErrForbidden
	}

	log := &model.StatusLog{
		ID:            uuid.New().String(),
		ApplicationID: current.ID,
		Status:        status,
		Notes:         model.NullString(notes),
	}

	app, err := s.store.UpdateApplicationStatus(ctx, log)
	if err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(status)).Inc()
	s.logger.Info("Application status changed",
		slog.String("application_id", app.ID),
		slog.String("from", string(current.Status)),
		slog.String("to", string(status)),
	)

	s.publish(ctx, app, log)
	return app, nil
}

// ListStatusLogs returns the history newest first to the job owner or the applicant
func (s *ApplicationService) ListStatusLogs(ctx context.Context, p *auth.Principal, applicationID string) ([]model.StatusLog, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	app, err := s.application(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	ownsJob := p.IsAdmin() && app.JobOwner == p.UserID
	isApplicant := p.IsUser() && app.UserID == p.UserID
	if !ownsJob && !isApplicant {
		return nil, domain.ErrForbidden
	}

	return s.store.ListStatusLogs(ctx, app.ID)
}

func (s *ApplicationService) application(ctx context.Context, applicationID string) (*model.ApplicationDetail, error) {
	if !validID(applicationID) {
		return nil, domain.ErrNotFound
	}
	return s.store.GetApplicationByID(ctx, applicationID)
}

// publish is best effort: the change is already committed
func (s *ApplicationService) publish(ctx context.Context, app *model.Application, log *model.StatusLog) {
	if s.events == nil {
		return
	}

	err := s.events.PublishStatusChanged(ctx, events.StatusChanged{
		StatusLogID:   log.ID,
		ApplicationID: app.ID,
		JobID:         app.JobID,
		UserID:        app.UserID,
		Status:        log.Status,
		Notes:         log.Notes.String,
		OccurredAt:    log.CreatedAt,
	})
	if err != nil {
		metrics.EventsPublishFailed.Inc()
		s.logger.Error("Failed to publish status change",
			slog.String("application_id", app.ID),
			slog.String("status_log_id", log.ID),
			slog.String("error", err.Error()),
		)
	}
}
