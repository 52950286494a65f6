package dto

import (
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/internal/api/service"
	"github.com/cuongbtq/job-board/internal/api/validation"
)

// JobRequest is the body of POST /jobs and PUT /jobs/:id
type JobRequest struct {
	Title          string               `json:"title"`
	Department     string               `json:"department"`
	Location       string               `json:"location"`
	Salary         string               `json:"salary"`
	Description    string               `json:"description"`
	Requirements   string               `json:"requirements"`
	ResumeRequired bool                 `json:"resumeRequired"`
	CustomFields   []domain.CustomField `json:"customFields"`
	Status         string               `json:"status"`
}

func (r JobRequest) Input() validation.JobInput {
	return validation.JobInput{
		Title:          r.Title,
		Department:     r.Department,
		Location:       r.Location,
		Salary:         r.Salary,
		Description:    r.Description,
		Requirements:   r.Requirements,
		ResumeRequired: r.ResumeRequired,
		CustomFields:   r.CustomFields,
		Status:         domain.JobStatus(r.Status),
	}
}

// JobStatusRequest sets a job's status; an empty status toggles it
type JobStatusRequest struct {
	Status string `json:"status"`
}

type ListJobsRequest struct {
	Search     string `form:"search"`
	Department string `form:"department"`
	Location   string `form:"location"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

func (r ListJobsRequest) Query() service.JobQuery {
	return service.JobQuery{
		Search:     r.Search,
		Department: r.Department,
		Location:   r.Location,
		Status:     r.Status,
		Page:       r.Page,
		Limit:      r.Limit,
	}
}

type JobDTO struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Department     string               `json:"department"`
	Location       string               `json:"location"`
	Salary         string               `json:"salary,omitempty"`
	Description    string               `json:"description"`
	Requirements   string               `json:"requirements"`
	ResumeRequired bool                 `json:"resumeRequired"`
	CustomFields   []domain.CustomField `json:"customFields"`
	Status         string               `json:"status"`
	CreatedBy      string               `json:"createdBy"`
	CreatedAt      string               `json:"createdAt"`
	UpdatedAt      string               `json:"updatedAt"`
}

// PersonDTO names a user attached to another resource
type PersonDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type JobSummaryDTO struct {
	JobDTO
	Poster         PersonDTO `json:"poster"`
	ApplicantCount int       `json:"applicantCount"`
}

// JobDetailResponse carries applications only for the job's owner, who
// always gets the key, even as an empty list
type JobDetailResponse struct {
	JobDTO
	Applications *[]ApplicationDTO `json:"applications,omitempty"`
}

type ListJobsResponse struct {
	Jobs       []JobSummaryDTO    `json:"jobs"`
	Pagination service.Pagination `json:"pagination"`
}

func NewJob(job *model.Job) JobDTO {
	fields := []domain.CustomField(job.CustomFields)
	if fields == nil {
		fields = []domain.CustomField{}
	}
	return JobDTO{
		ID:             job.ID,
		Title:          job.Title,
		Department:     job.Department,
		Location:       job.Location,
		Salary:         job.Salary.String,
		Description:    job.Description,
		Requirements:   job.Requirements,
		ResumeRequired: job.ResumeRequired,
		CustomFields:   fields,
		Status:         string(job.Status),
		CreatedBy:      job.CreatedBy,
		CreatedAt:      formatTime(job.CreatedAt),
		UpdatedAt:      formatTime(job.UpdatedAt),
	}
}

func NewJobDetail(detail *service.JobDetail) JobDetailResponse {
	resp := JobDetailResponse{JobDTO: NewJob(detail.Job)}
	if detail.Applications != nil {
		apps := NewApplications(detail.Applications)
		resp.Applications = &apps
	}
	return resp
}

func NewListJobsResponse(page *service.JobPage) ListJobsResponse {
	jobs := make([]JobSummaryDTO, len(page.Jobs))
	for i := range page.Jobs {
		summary := &page.Jobs[i]
		jobs[i] = JobSummaryDTO{
			JobDTO:         NewJob(&summary.Job),
			Poster:         PersonDTO{Name: summary.PosterName, Email: summary.PosterEmail},
			ApplicantCount: summary.ApplicantCount,
		}
	}
	return ListJobsResponse{Jobs: jobs, Pagination: page.Pagination}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
