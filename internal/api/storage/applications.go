package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/shared/postgresql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const applicationDetailSelect = `
	SELECT a.id, a.job_id, a.user_id, a.answers, a.resume_url, a.status,
	       a.created_at, a.updated_at,
	       j.title AS job_title,
	       j.department AS job_department,
	       j.location AS job_location,
	       j.created_by AS job_owner,
	       u.name AS applicant_name,
	       u.email AS applicant_email
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN users u ON u.id = a.user_id`

// ApplicationFilter narrows an application listing; empty fields are ignored
type ApplicationFilter struct {
	UserID string
	JobID  string
	Status domain.ApplicationStatus
	Page
}

// CreateApplication inserts the application and its initial status log in a
// single transaction. A second application for the same (job, user) pair is
// rejected by the unique constraint and reported as ErrDuplicateApplication.
// The database stamps app and log with the transaction time.
func (s *Storage) CreateApplication(ctx context.Context, app *model.Application, log *model.StatusLog) error {
	return s.pg.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO applications (
				id, job_id, user_id, answers, resume_url, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, now(), now())
			RETURNING created_at, updated_at
		`,
			app.ID,
			app.JobID,
			app.UserID,
			app.Answers,
			app.ResumeURL,
			app.Status,
		).Scan(&app.CreatedAt, &app.UpdatedAt)
		if err != nil {
			if postgresql.IsUniqueViolation(err, ApplicationUniqueConstraint) {
				return domain.ErrDuplicateApplication
			}
			return fmt.Errorf("failed to create application: %w", err)
		}

		log.CreatedAt = app.CreatedAt
		return insertStatusLog(ctx, tx, log)
	})
}

// UpdateApplicationStatus sets the status and appends log in one transaction.
// The database stamps log.CreatedAt after taking the row lock, so log order
// follows commit order.
func (s *Storage) UpdateApplicationStatus(ctx context.Context, log *model.StatusLog) (*model.Application, error) {
	var app model.Application

	err := s.pg.WithTx(ctx, func(tx *sqlx.Tx) error {
		var locked string
		err := tx.GetContext(ctx, &locked, `SELECT id FROM applications WHERE id = $1 FOR UPDATE`, log.ApplicationID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("failed to lock application: %w", err)
		}

		err = tx.GetContext(ctx, &app, `
			UPDATE applications
			SET status = $1, updated_at = clock_timestamp()
			WHERE id = $2
			RETURNING id, job_id, user_id, answers, resume_url, status, created_at, updated_at
		`, log.Status, log.ApplicationID)
		if err != nil {
			return fmt.Errorf("failed to update application status: %w", err)
		}

		log.CreatedAt = app.UpdatedAt
		return insertStatusLog(ctx, tx, log)
	})
	if err != nil {
		return nil, err
	}

	return &app, nil
}

func insertStatusLog(ctx context.Context, tx *sqlx.Tx, log *model.StatusLog) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO status_logs (id, application_id, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, log.ID, log.ApplicationID, log.Status, log.Notes, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create status log: %w", err)
	}
	return nil
}

func (s *Storage) GetApplicationByID(ctx context.Context, applicationID string) (*model.ApplicationDetail, error) {
	var app model.ApplicationDetail

	err := s.db.GetContext(ctx, &app, applicationDetailSelect+` WHERE a.id = $1`, applicationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return &app, nil
}

// ListApplications returns one page of applications, newest first, each with
// its status history attached.
func (s *Storage) ListApplications(ctx context.Context, filter ApplicationFilter) ([]model.ApplicationDetail, int, error) {
	where := &whereBuilder{}

	if filter.UserID != "" {
		where.add("a.user_id = $%d", filter.UserID)
	}
	if filter.JobID != "" {
		where.add("a.job_id = $%d", filter.JobID)
	}
	if filter.Status != "" {
		where.add("a.status = $%d", filter.Status)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM applications a`+where.sql(), where.args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	query := applicationDetailSelect + where.sql() +
		fmt.Sprintf(" ORDER BY a.created_at DESC, a.id DESC LIMIT $%d OFFSET $%d", where.next(), where.next()+1)
	args := append(where.args, filter.Limit, filter.offset())

	apps := []model.ApplicationDetail{}
	if err := s.db.SelectContext(ctx, &apps, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}

	if err := s.attachStatusLogs(ctx, apps); err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// ListApplicationsByJob returns every application to a job, newest first
func (s *Storage) ListApplicationsByJob(ctx context.Context, jobID string) ([]model.ApplicationDetail, error) {
	apps := []model.ApplicationDetail{}

	err := s.db.SelectContext(ctx, &apps, applicationDetailSelect+` WHERE a.job_id = $1 ORDER BY a.created_at DESC, a.id DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}

	return apps, nil
}

// ListStatusLogs returns an application's history, newest first
func (s *Storage) ListStatusLogs(ctx context.Context, applicationID string) ([]model.StatusLog, error) {
	logs := []model.StatusLog{}

	err := s.db.SelectContext(ctx, &logs, `
		SELECT id, application_id, status, notes, created_at
		FROM status_logs
		WHERE application_id = $1
		ORDER BY created_at DESC, id DESC
	`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list status logs: %w", err)
	}

	return logs, nil
}

func (s *Storage) attachStatusLogs(ctx context.Context, apps []model.ApplicationDetail) error {
	if len(apps) == 0 {
		return nil
	}

	ids := make([]string, len(apps))
	byID := make(map[string]*model.ApplicationDetail, len(apps))
	for i := range apps {
		ids[i] = apps[i].ID
		apps[i].StatusLogs = []model.StatusLog{}
		byID[apps[i].ID] = &apps[i]
	}

	var logs []model.StatusLog
	err := s.db.SelectContext(ctx, &logs, `
		SELECT id, application_id, status, notes, created_at
		FROM status_logs
		WHERE application_id = ANY($1)
		ORDER BY created_at DESC, id DESC
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load status logs: %w", err)
	}

	for _, l := range logs {
		if app, ok := byID[l.ApplicationID]; ok {
			app.StatusLogs = append(app.StatusLogs, l)
		}
	}

	return nil
}
