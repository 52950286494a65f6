package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	assert.NoError(t, verr.OrNil())

	verr.Add("title", "Title is required")
	verr.Add("title", "ignored second message")
	verr.Add("customFields[0].options", "Select and radio fields must have non-empty options")

	err := fmt.Errorf("create job: %w", verr.OrNil())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))

	var target *ValidationError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "Title is required", target.Fields["title"])
	assert.Equal(t,
		"validation failed: customFields[0].options: Select and radio fields must have non-empty options; title: Title is required",
		target.Error())
}

func TestJobStatus_Toggled(t *testing.T) {
	assert.Equal(t, JobStatusClosed, JobStatusActive.Toggled())
	assert.Equal(t, JobStatusActive, JobStatusClosed.Toggled())
	assert.Equal(t, JobStatusActive, JobStatusDraft.Toggled())
}

func TestStatusValidity(t *testing.T) {
	for _, s := range ApplicationStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ApplicationStatus("WITHDRAWN").Valid())
	assert.False(t, ApplicationStatus("pending").Valid())

	assert.True(t, JobStatusDraft.Valid())
	assert.False(t, JobStatusAll.Valid())

	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("GUEST").Valid())
}

func TestCustomFields_Scan(t *testing.T) {
	var fields CustomFields
	require.NoError(t, fields.Scan([]byte(`[{"id":"q1","label":"Notice period","type":"select","required":true,"options":["1 month","3 months"]}]`)))

	require.Len(t, fields, 1)
	field, ok := fields.ByID("q1")
	require.True(t, ok)
	assert.Equal(t, FieldTypeSelect, field.Type)
	assert.True(t, field.Type.HasOptions())
	assert.Equal(t, []string{"1 month", "3 months"}, field.Options)

	_, ok = fields.ByID("missing")
	assert.False(t, ok)

	require.NoError(t, fields.Scan(nil))
	assert.Empty(t, fields)

	assert.Error(t, fields.Scan(42))
}

func TestCustomFields_ValueNeverNull(t *testing.T) {
	var fields CustomFields
	v, err := fields.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	var answers Answers
	v, err = answers.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)
}

func TestAnswers_Scan(t *testing.T) {
	var answers Answers
	require.NoError(t, answers.Scan(`{"q1":{"type":"radio","value":"yes"}}`))
	assert.Equal(t, Answer{Type: FieldTypeRadio, Value: "yes"}, answers["q1"])
}

func TestValidationError_Merge(t *testing.T) {
	verr := NewValidationError()
	verr.Add("resumeUrl", "Resume is required for this job")

	assert.NoError(t, verr.Merge(nil))
	assert.NoError(t, verr.Merge(FieldError("answers.q1", "This question is required")))
	assert.Len(t, verr.Fields, 2)

	internal := errors.New("db down")
	assert.Equal(t, internal, verr.Merge(internal))
	assert.Len(t, verr.Fields, 2)
}
