package dto

import (
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/internal/api/service"
	"github.com/cuongbtq/job-board/internal/api/validation"
)

type SubmitApplicationRequest struct {
	JobID     string                 `json:"jobId"`
	Answers   map[string]interface{} `json:"answers"`
	ResumeURL string                 `json:"resumeUrl"`
}

func (r SubmitApplicationRequest) Input() validation.ApplicationInput {
	return validation.ApplicationInput{
		JobID:     r.JobID,
		Answers:   r.Answers,
		ResumeURL: r.ResumeURL,
	}
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type ListApplicationsRequest struct {
	JobID  string `form:"jobId"`
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r ListApplicationsRequest) Query() service.ApplicationQuery {
	return service.ApplicationQuery{
		JobID:  r.JobID,
		Status: r.Status,
		Page:   r.Page,
		Limit:  r.Limit,
	}
}

type StatusLogDTO struct {
	ID            string `json:"id"`
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// ApplicationJobDTO is the job summary shown next to an application
type ApplicationJobDTO struct {
	Title      string `json:"title"`
	Department string `json:"department"`
	Location   string `json:"location"`
}

type ApplicationDTO struct {
	ID         string             `json:"id"`
	JobID      string             `json:"jobId"`
	UserID     string             `json:"userId"`
	Answers    domain.Answers     `json:"answers"`
	ResumeURL  string             `json:"resumeUrl,omitempty"`
	Status     string             `json:"status"`
	CreatedAt  string             `json:"createdAt"`
	UpdatedAt  string             `json:"updatedAt"`
	Job        *ApplicationJobDTO `json:"job,omitempty"`
	Applicant  *PersonDTO         `json:"applicant,omitempty"`
	StatusLogs []StatusLogDTO     `json:"statusLogs,omitempty"`
}

type ListApplicationsResponse struct {
	Applications []ApplicationDTO   `json:"applications"`
	Pagination   service.Pagination `json:"pagination"`
}

type ListStatusLogsResponse struct {
	StatusLogs []StatusLogDTO `json:"statusLogs"`
}

func NewApplication(app *model.Application) ApplicationDTO {
	answers := app.Answers
	if answers == nil {
		answers = domain.Answers{}
	}
	return ApplicationDTO{
		ID:        app.ID,
		JobID:     app.JobID,
		UserID:    app.UserID,
		Answers:   answers,
		ResumeURL: app.ResumeURL.String,
		Status:    string(app.Status),
		CreatedAt: formatTime(app.CreatedAt),
		UpdatedAt: formatTime(app.UpdatedAt),
	}
}

func NewApplicationDetail(detail *model.ApplicationDetail) ApplicationDTO {
	resp := NewApplication(&detail.Application)
	resp.Job = &ApplicationJobDTO{
		Title:      detail.JobTitle,
		Department: detail.JobDepartment,
		Location:   detail.JobLocation,
	}
	resp.Applicant = &PersonDTO{Name: detail.ApplicantName, Email: detail.ApplicantEmail}
	if detail.StatusLogs != nil {
		resp.StatusLogs = NewStatusLogs(detail.StatusLogs)
	}
	return resp
}

func NewApplications(details []model.ApplicationDetail) []ApplicationDTO {
	out := make([]ApplicationDTO, len(details))
	for i := range details {
		out[i] = NewApplicationDetail(&details[i])
	}
	return out
}

func NewListApplicationsResponse(page *service.ApplicationPage) ListApplicationsResponse {
	return ListApplicationsResponse{
		Applications: NewApplications(page.Applications),
		Pagination:   page.Pagination,
	}
}

func NewStatusLogs(logs []model.StatusLog) []StatusLogDTO {
	out := make([]StatusLogDTO, len(logs))
	for i, l := range logs {
		out[i] = StatusLogDTO{
			ID:            l.ID,
			ApplicationID: l.ApplicationID,
			Status:        string(l.Status),
			Notes:         l.Notes.String,
			CreatedAt:     formatTime(l.CreatedAt),
		}
	}
	return out
}
