package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
)

const jobColumns = `
	j.id, j.title, j.department, j.location, j.salary, j.description,
	j.requirements, j.resume_required, j.custom_fields, j.status,
	j.created_by, j.created_at, j.updated_at`

// JobFilter narrows a job listing. An empty Status or domain.JobStatusAll
// disables the status predicate.
type JobFilter struct {
	Search     string
	Department string
	Location   string
	Status     domain.JobStatus
	Page
}

func (s *Storage) CreateJob(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (
			id, title, department, location, salary, description,
			requirements, resume_required, custom_fields, status,
			created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Department,
		job.Location,
		job.Salary,
		job.Description,
		job.Requirements,
		job.ResumeRequired,
		job.CustomFields,
		job.Status,
		job.CreatedBy,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.id = $1`

	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// UpdateJob overwrites every mutable column of a job owned by job.CreatedBy
func (s *Storage) UpdateJob(ctx context.Context, job *model.Job) error {
	query := `
		UPDATE jobs
		SET title = $1,
		    department = $2,
		    location = $3,
		    salary = $4,
		    description = $5,
		    requirements = $6,
		    resume_required = $7,
		    custom_fields = $8,
		    status = $9,
		    updated_at = $10
		WHERE id = $11 AND created_by = $12
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		job.Title,
		job.Department,
		job.Location,
		job.Salary,
		job.Description,
		job.Requirements,
		job.ResumeRequired,
		job.CustomFields,
		job.Status,
		job.UpdatedAt,
		job.ID,
		job.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	return expectOneRow(result)
}

func (s *Storage) UpdateJobStatus(ctx context.Context, jobID, ownerID string, status domain.JobStatus) error {
	query := `
		UPDATE jobs
		SET status = $1, updated_at = $2
		WHERE id = $3 AND created_by = $4
	`

	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), jobID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	return expectOneRow(result)
}

// DeleteJob removes a job; applications and their status logs cascade
func (s *Storage) DeleteJob(ctx context.Context, jobID, ownerID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1 AND created_by = $2`, jobID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	return expectOneRow(result)
}

// ListJobs returns one page of jobs, newest first, with the total match count
func (s *Storage) ListJobs(ctx context.Context, filter JobFilter) ([]model.JobSummary, int, error) {
	where := &whereBuilder{}

	if filter.Status != "" && filter.Status != domain.JobStatusAll {
		where.add("j.status = $%d", filter.Status)
	}
	if filter.Search != "" {
		where.addContains(filter.Search, "j.title", "j.description")
	}
	if filter.Department != "" {
		where.addContains(filter.Department, "j.department")
	}
	if filter.Location != "" {
		where.addContains(filter.Location, "j.location")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM jobs j` + where.sql()
	if err := s.db.GetContext(ctx, &total, countQuery, where.args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := `
		SELECT ` + jobColumns + `,
		       u.name AS poster_name,
		       u.email AS poster_email,
		       (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS applicant_count
		FROM jobs j
		JOIN users u ON u.id = j.created_by` + where.sql() +
		fmt.Sprintf(" ORDER BY j.created_at DESC, j.id DESC LIMIT $%d OFFSET $%d", where.next(), where.next()+1)

	args := append(where.args, filter.Limit, filter.offset())

	jobs := []model.JobSummary{}
	if err := s.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}

	return jobs, total, nil
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
