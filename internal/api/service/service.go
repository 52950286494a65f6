// Package service holds the job-board business rules. Every operation takes
// the caller's principal explicitly; a nil principal means an anonymous call.
package service

import (
	"context"
	"time"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/internal/api/storage"
	"github.com/cuongbtq/job-board/internal/events"
	"github.com/google/uuid"
)

// JobStore persists jobs
type JobStore interface {
	CreateJob(ctx context.Context, job *model.Job) error
	GetJobByID(ctx context.Context, jobID string) (*model.Job, error)
	UpdateJob(ctx context.Context, job *model.Job) error
	UpdateJobStatus(ctx context.Context, jobID, ownerID string, status domain.JobStatus) error
	DeleteJob(ctx context.Context, jobID, ownerID string) error
	ListJobs(ctx context.Context, filter storage.JobFilter) ([]model.JobSummary, int, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]model.ApplicationDetail, error)
}

// ApplicationStore persists applications and their status history. Both
// write methods store the application change and its log row atomically.
// Timestamps are assigned by the store, so log order follows commit order.
type ApplicationStore interface {
	GetJobByID(ctx context.Context, jobID string) (*model.Job, error)
	CreateApplication(ctx context.Context, app *model.Application, log *model.StatusLog) error
	GetApplicationByID(ctx context.Context, applicationID string) (*model.ApplicationDetail, error)
	UpdateApplicationStatus(ctx context.Context, log *model.StatusLog) (*model.Application, error)
	ListApplications(ctx context.Context, filter storage.ApplicationFilter) ([]model.ApplicationDetail, int, error)
	ListStatusLogs(ctx context.Context, applicationID string) ([]model.StatusLog, error)
}

type UserStore interface {
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, user *model.User) error
}

// EventPublisher announces committed status changes
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, ev events.StatusChanged) error
}

// Pagination describes the page returned by a listing
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// pageRequest applies the listing defaults. Pages whose offset would exceed
// domain.MaxOffset are rejected on the "page" field.
func pageRequest(page, limit int) (storage.Page, error) {
	if page < 1 {
		page = domain.DefaultPage
	}
	if limit < 1 {
		limit = domain.DefaultLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}
	if page-1 > domain.MaxOffset/limit {
		return storage.Page{}, domain.FieldError("page", "Page is out of range")
	}
	return storage.Page{Page: page, Limit: limit}, nil
}

func newPagination(p storage.Page, total int) Pagination {
	return Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: (total + p.Limit - 1) / p.Limit,
	}
}

func requireRole(p *auth.Principal, role domain.Role) error {
	if p == nil {
		return domain.ErrUnauthorized
	}
	if p.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

// validID reports whether id can name a stored row. Malformed ids are
// treated as missing rows instead of reaching the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
