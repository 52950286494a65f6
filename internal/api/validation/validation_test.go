package validation

import (
	"errors"
	"testing"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fieldNotice = "0b6a1f0e-7a4c-4a53-9a3e-2f1f8c6b7d10"
	fieldIntro  = "5d0f3b8e-1c2a-4e9f-8b7d-6a5c4b3a2f19"
)

func validJob() JobInput {
	return JobInput{
		Title:        "Backend Engineer",
		Department:   "Engineering",
		Location:     "Remote",
		Description:  "Build and run the hiring platform",
		Requirements: "3+ years of Go",
		CustomFields: []domain.CustomField{
			{ID: fieldNotice, Label: "Notice period", Type: domain.FieldTypeSelect, Required: true, Options: []string{"Immediate", "1 month"}},
			{ID: fieldIntro, Label: "Introduce yourself", Type: domain.FieldTypeTextarea},
		},
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()

	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrValidation), "expected validation error, got %v", err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	return verr.Fields
}

func TestJob_Defaults(t *testing.T) {
	in := validJob()
	in.CustomFields = nil
	in.Title = "  Backend Engineer  "

	out, err := Job(in)

	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", out.Title)
	assert.Equal(t, domain.JobStatusActive, out.Status)
	assert.NotNil(t, out.CustomFields)
	assert.Empty(t, out.CustomFields)
}

func TestJob_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *JobInput)
		field  string
		msg    string
	}{
		{
			name:   "missing title",
			mutate: func(in *JobInput) { in.Title = "   " },
			field:  "title",
			msg:    "Title is required",
		},
		{
			name:   "missing requirements",
			mutate: func(in *JobInput) { in.Requirements = "" },
			field:  "requirements",
			msg:    "Requirements are required",
		},
		{
			name:   "unknown status",
			mutate: func(in *JobInput) { in.Status = domain.JobStatusAll },
			field:  "status",
			msg:    "Status must be one of ACTIVE, CLOSED or DRAFT",
		},
		{
			name:   "select without options",
			mutate: func(in *JobInput) { in.CustomFields[0].Options = nil },
			field:  "customFields[0].options",
			msg:    "Select and radio fields must have non-empty options",
		},
		{
			name: "radio with empty options",
			mutate: func(in *JobInput) {
				in.CustomFields[1].Type = domain.FieldTypeRadio
				in.CustomFields[1].Options = []string{}
			},
			field: "customFields[1].options",
			msg:   "Select and radio fields must have non-empty options",
		},
		{
			name:   "blank option",
			mutate: func(in *JobInput) { in.CustomFields[0].Options = []string{"Immediate", " "} },
			field:  "customFields[0].options[1]",
			msg:    "Option cannot be empty",
		},
		{
			name:   "custom field id not a uuid",
			mutate: func(in *JobInput) { in.CustomFields[1].ID = "q2" },
			field:  "customFields[1].id",
			msg:    "Custom field ID must be a valid UUID",
		},
		{
			name:   "unknown custom field type",
			mutate: func(in *JobInput) { in.CustomFields[1].Type = "checkbox" },
			field:  "customFields[1].type",
			msg:    "Custom field type must be one of text, textarea, select or radio",
		},
		{
			name:   "duplicate custom field id",
			mutate: func(in *JobInput) { in.CustomFields[1].ID = fieldNotice },
			field:  "customFields[1].id",
			msg:    "Custom field ID duplicates customFields[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validJob()
			tt.mutate(&in)

			_, err := Job(in)

			fields := fieldsOf(t, err)
			assert.Equal(t, tt.msg, fields[tt.field], "fields: %v", fields)
		})
	}
}

func TestJob_OptionsDroppedForFreeText(t *testing.T) {
	in := validJob()
	in.CustomFields[1].Options = []string{"ignored"}

	out, err := Job(in)

	require.NoError(t, err)
	assert.Nil(t, out.CustomFields[1].Options)
}

func TestJobStatus(t *testing.T) {
	assert.NoError(t, JobStatus(domain.JobStatusDraft))

	fields := fieldsOf(t, JobStatus("ARCHIVED"))
	assert.Contains(t, fields, "status")
}

func TestApplication(t *testing.T) {
	tests := []struct {
		name  string
		in    ApplicationInput
		field string
	}{
		{name: "valid", in: ApplicationInput{JobID: fieldNotice, ResumeURL: "https://cdn.example.com/r.pdf"}},
		{name: "no resume", in: ApplicationInput{JobID: fieldNotice}},
		{name: "missing job", in: ApplicationInput{}, field: "jobId"},
		{name: "job id not uuid", in: ApplicationInput{JobID: "j1"}, field: "jobId"},
		{name: "relative resume url", in: ApplicationInput{JobID: fieldNotice, ResumeURL: "/uploads/r.pdf"}, field: "resumeUrl"},
		{name: "non http resume url", in: ApplicationInput{JobID: fieldNotice, ResumeURL: "ftp://files.example.com/r.pdf"}, field: "resumeUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Application(tt.in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, fieldsOf(t, err), tt.field)
		})
	}
}

func TestAnswers(t *testing.T) {
	fields := domain.CustomFields{
		{ID: "q1", Label: "Can you relocate?", Type: domain.FieldTypeRadio, Required: true, Options: []string{"yes", "no", "yes"}},
		{ID: "q2", Label: "Current title", Type: domain.FieldTypeText},
		{ID: "q3", Label: "Cover letter", Type: domain.FieldTypeTextarea},
	}

	t.Run("valid answers are typed", func(t *testing.T) {
		answers, err := Answers(fields, map[string]interface{}{
			"q1": "yes",
			"q2": " Engineer ",
			"q3": "Line one\nLine two",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.Answers{
			"q1": {Type: domain.FieldTypeRadio, Value: "yes"},
			"q2": {Type: domain.FieldTypeText, Value: "Engineer"},
			"q3": {Type: domain.FieldTypeTextarea, Value: "Line one\nLine two"},
		}, answers)
	})

	t.Run("blank optional answers are dropped", func(t *testing.T) {
		answers, err := Answers(fields, map[string]interface{}{"q1": "no", "q2": "", "q3": nil})

		require.NoError(t, err)
		assert.Len(t, answers, 1)
	})

	tests := []struct {
		name  string
		raw   map[string]interface{}
		field string
		msg   string
	}{
		{name: "missing required", raw: map[string]interface{}{"q2": "Engineer"}, field: "answers.q1", msg: "This question is required"},
		{name: "blank required", raw: map[string]interface{}{"q1": "  "}, field: "answers.q1", msg: "This question is required"},
		{name: "option not offered", raw: map[string]interface{}{"q1": "maybe"}, field: "answers.q1", msg: "Select one of the available options"},
		{name: "unknown question", raw: map[string]interface{}{"q1": "yes", "q9": "hi"}, field: "answers.q9", msg: "Unknown question"},
		{name: "multi-line text", raw: map[string]interface{}{"q1": "yes", "q2": "a\nb"}, field: "answers.q2", msg: "Answer must be a single line"},
		{name: "non-string answer", raw: map[string]interface{}{"q1": "yes", "q3": 42}, field: "answers.q3", msg: "Answer must be text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Answers(fields, tt.raw)

			got := fieldsOf(t, err)
			assert.Equal(t, tt.msg, got[tt.field], "fields: %v", got)
		})
	}
}

func TestAnswers_NoCustomFields(t *testing.T) {
	answers, err := Answers(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, answers)

	_, err = Answers(nil, map[string]interface{}{"q1": "yes"})
	assert.Contains(t, fieldsOf(t, err), "answers.q1")
}

func TestProfile(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name  string
		in    ProfileInput
		field string
		msg   string
	}{
		{name: "empty update", in: ProfileInput{}},
		{name: "full update", in: ProfileInput{Name: str("Grace Hopper"), Phone: str("+15551234567"), Location: str("Arlington")}},
		{name: "short name", in: ProfileInput{Name: str("G")}, field: "name", msg: "Name must be at least 2 characters"},
		{name: "phone with letters", in: ProfileInput{Phone: str("555-CALL")}, field: "phone", msg: "Invalid phone number format"},
		{name: "phone leading zero", in: ProfileInput{Phone: str("0123456")}, field: "phone", msg: "Invalid phone number format"},
		{name: "blank location", in: ProfileInput{Location: str("  ")}, field: "location", msg: "Location cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Profile(tt.in)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.msg, fieldsOf(t, err)[tt.field])
		})
	}
}
