package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/xeipuuv/gojsonschema"
)

// ApplicationInput is a submission against a job. Answers carry raw JSON
// values keyed by custom field id until they are checked against the job.
type ApplicationInput struct {
	JobID     string                 `json:"jobId" validate:"required,uuid"`
	Answers   map[string]interface{} `json:"answers"`
	ResumeURL string                 `json:"resumeUrl" validate:"omitempty,http_url"`
}

// Application checks the shape of a submission without looking at the job
func Application(in ApplicationInput) (ApplicationInput, error) {
	in.JobID = strings.TrimSpace(in.JobID)
	in.ResumeURL = strings.TrimSpace(in.ResumeURL)
	return in, Struct(in)
}

var answerMessages = map[string]string{
	"required":                        "This question is required",
	"additional_property_not_allowed": "Unknown question",
	"enum":                            "Select one of the available options",
	"pattern":                         "Answer must be a single line",
	"invalid_type":                    "Answer must be text",
}

// Answers validates raw answers against the job's custom fields and returns
// them as typed answers. Empty and null values count as unanswered.
func Answers(fields domain.CustomFields, raw map[string]interface{}) (domain.Answers, error) {
	answered := make(map[string]interface{}, len(raw))
	for id, v := range raw {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			val = strings.TrimSpace(val)
			if val == "" {
				continue
			}
			answered[id] = val
		default:
			answered[id] = v
		}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(answersSchema(fields)),
		gojsonschema.NewGoLoader(answered),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate answers: %w", err)
	}

	if !result.Valid() {
		verr := domain.NewValidationError()
		for _, desc := range result.Errors() {
			field := desc.Field()
			if property, ok := desc.Details()["property"].(string); ok && field == gojsonschema.STRING_CONTEXT_ROOT {
				field = property
			}

			msg, ok := answerMessages[desc.Type()]
			if !ok {
				msg = desc.Description()
			}
			verr.Add("answers."+field, msg)
		}
		return nil, verr
	}

	answers := make(domain.Answers, len(answered))
	for id, v := range answered {
		field, _ := fields.ByID(id)
		answers[id] = domain.Answer{Type: field.Type, Value: v.(string)}
	}
	return answers, nil
}

// answersSchema builds a JSON Schema document describing valid answers
func answersSchema(fields domain.CustomFields) map[string]interface{} {
	properties := make(map[string]interface{}, len(fields))
	var required []string

	for _, f := range fields {
		property := map[string]interface{}{"type": "string"}

		switch f.Type {
		case domain.FieldTypeText:
			property["pattern"] = `^[^\r\n]*$`
		case domain.FieldTypeSelect, domain.FieldTypeRadio:
			property["enum"] = uniqueOptions(f.Options)
		}

		properties[f.ID] = property
		if f.Required {
			required = append(required, f.ID)
		}
	}

	schema := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		sort.Strings(required)
		schema["required"] = required
	}
	return schema
}

func uniqueOptions(options []string) []interface{} {
	seen := make(map[string]struct{}, len(options))
	out := make([]interface{}, 0, len(options))
	for _, o := range options {
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		out = append(out, o)
	}
	return out
}
