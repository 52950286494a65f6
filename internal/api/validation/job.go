package validation

import (
	"fmt"
	"strings"

	"github.com/cuongbtq/job-board/internal/api/domain"
)

// JobInput holds the mutable fields of a job posting
type JobInput struct {
	Title          string               `json:"title" validate:"required"`
	Department     string               `json:"department" validate:"required"`
	Location       string               `json:"location" validate:"required"`
	Salary         string               `json:"salary"`
	Description    string               `json:"description" validate:"required"`
	Requirements   string               `json:"requirements" validate:"required"`
	ResumeRequired bool                 `json:"resumeRequired"`
	CustomFields   []domain.CustomField `json:"customFields" validate:"dive"`
	Status         domain.JobStatus     `json:"status" validate:"omitempty,oneof=ACTIVE CLOSED DRAFT"`
}

// Job trims and validates in, returning the normalized input with status
// defaulted to ACTIVE and customFields defaulted to an empty list.
func Job(in JobInput) (JobInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Department = strings.TrimSpace(in.Department)
	in.Location = strings.TrimSpace(in.Location)
	in.Salary = strings.TrimSpace(in.Salary)
	in.Description = strings.TrimSpace(in.Description)
	in.Requirements = strings.TrimSpace(in.Requirements)

	fields := make([]domain.CustomField, len(in.CustomFields))
	for i, f := range in.CustomFields {
		f.ID = strings.TrimSpace(f.ID)
		f.Label = strings.TrimSpace(f.Label)
		if f.Options != nil {
			options := make([]string, len(f.Options))
			for j, o := range f.Options {
				options[j] = strings.TrimSpace(o)
			}
			f.Options = options
		}
		if !f.Type.HasOptions() {
			f.Options = nil
		}
		fields[i] = f
	}
	in.CustomFields = fields

	if in.Status == "" {
		in.Status = domain.JobStatusActive
	}

	verr := domain.NewValidationError()
	if err := collect(in, verr); err != nil {
		return in, err
	}

	seen := make(map[string]int, len(in.CustomFields))
	for i, f := range in.CustomFields {
		if f.ID == "" {
			continue
		}
		if first, ok := seen[f.ID]; ok {
			verr.Add(fmt.Sprintf("customFields[%d].id", i),
				fmt.Sprintf("Custom field ID duplicates customFields[%d]", first))
			continue
		}
		seen[f.ID] = i
	}

	return in, verr.OrNil()
}

// JobStatus validates a status set directly on a job
func JobStatus(status domain.JobStatus) error {
	if !status.Valid() {
		return domain.FieldError("status", messages["status:oneof"])
	}
	return nil
}
