package model

import (
	"database/sql"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
)

type User struct {
	ID        string         `db:"id"`
	Email     string         `db:"email"`
	Name      string         `db:"name"`
	Role      domain.Role    `db:"role"`
	Phone     sql.NullString `db:"phone"`
	Location  sql.NullString `db:"location"`
	CreatedAt time.Time      `db:"created_at"`
}

type Job struct {
	ID             string              `db:"id"`
	Title          string              `db:"title"`
	Department     string              `db:"department"`
	Location       string              `db:"location"`
	Salary         sql.NullString      `db:"salary"`
	Description    string              `db:"description"`
	Requirements   string              `db:"requirements"`
	ResumeRequired bool                `db:"resume_required"`
	CustomFields   domain.CustomFields `db:"custom_fields"`
	Status         domain.JobStatus    `db:"status"`
	CreatedBy      string              `db:"created_by"`
	CreatedAt      time.Time           `db:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at"`
}

// JobSummary is a listing row: the job, its poster and its applicant count
type JobSummary struct {
	Job
	PosterName     string `db:"poster_name"`
	PosterEmail    string `db:"poster_email"`
	ApplicantCount int    `db:"applicant_count"`
}

type Application struct {
	ID        string                   `db:"id"`
	JobID     string                   `db:"job_id"`
	UserID    string                   `db:"user_id"`
	Answers   domain.Answers           `db:"answers"`
	ResumeURL sql.NullString           `db:"resume_url"`
	Status    domain.ApplicationStatus `db:"status"`
	CreatedAt time.Time                `db:"created_at"`
	UpdatedAt time.Time                `db:"updated_at"`
}

// ApplicationDetail is an application joined with its job and applicant
type ApplicationDetail struct {
	Application
	JobTitle       string `db:"job_title"`
	JobDepartment  string `db:"job_department"`
	JobLocation    string `db:"job_location"`
	JobOwner       string `db:"job_owner"`
	ApplicantName  string `db:"applicant_name"`
	ApplicantEmail string `db:"applicant_email"`

	StatusLogs []StatusLog `db:"-"`
}

type StatusLog struct {
	ID            string                   `db:"id"`
	ApplicationID string                   `db:"application_id"`
	Status        domain.ApplicationStatus `db:"status"`
	Notes         sql.NullString           `db:"notes"`
	CreatedAt     time.Time                `db:"created_at"`
}

// NullString converts an optional value into its column form
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
