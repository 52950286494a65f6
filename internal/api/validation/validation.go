// Package validation checks job, application and profile input before it
// reaches storage and reports failures as field-keyed messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	indexPattern = regexp.MustCompile(`\[\d+\]`)
)

// messages is keyed by "<field path with [] for indexes>:<tag>"
var messages = map[string]string{
	"title:required":                    "Title is required",
	"department:required":               "Department is required",
	"location:required":                 "Location is required",
	"description:required":              "Description is required",
	"requirements:required":             "Requirements are required",
	"status:oneof":                      "Status must be one of ACTIVE, CLOSED or DRAFT",
	"customFields[].id:required":        "Custom field ID is required",
	"customFields[].id:uuid":            "Custom field ID must be a valid UUID",
	"customFields[].label:required":     "Custom field label is required",
	"customFields[].type:required":      "Custom field type is required",
	"customFields[].type:oneof":         "Custom field type must be one of text, textarea, select or radio",
	"customFields[].options:options":    "Select and radio fields must have non-empty options",
	"customFields[].options[]:required": "Option cannot be empty",
	"jobId:required":                    "Job ID is required",
	"jobId:uuid":                        "Job ID must be a valid UUID",
	"resumeUrl:http_url":                "Resume URL must be a valid URL",
	"name:min":                          "Name must be at least 2 characters",
	"name:max":                          "Name must be at most 100 characters",
	"phone:phone":                       "Invalid phone number format",
	"location:min":                      "Location cannot be empty",
	"location:max":                      "Location must be at most 100 characters",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}

	v.RegisterStructValidation(validateCustomFieldOptions, domain.CustomField{})

	return v
}

func validateCustomFieldOptions(sl validator.StructLevel) {
	field := sl.Current().Interface().(domain.CustomField)
	if field.Type.HasOptions() && len(field.Options) == 0 {
		sl.ReportError(field.Options, "options", "Options", "options", "")
	}
}

// Struct validates v against its validate tags and converts failures into a
// *domain.ValidationError.
func Struct(v interface{}) error {
	verr := domain.NewValidationError()
	if err := collect(v, verr); err != nil {
		return err
	}
	return verr.OrNil()
}

// collect adds one message per failing field to verr. Only errors unrelated
// to the input itself are returned.
func collect(v interface{}, verr *domain.ValidationError) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		verr.Add(field, message(field, fe))
	}
	return nil
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(field string, fe validator.FieldError) string {
	key := indexPattern.ReplaceAllString(field, "[]") + ":" + fe.Tag()
	if msg, ok := messages[key]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "uuid":
		return "Must be a valid UUID"
	case "http_url", "url":
		return "Must be a valid URL"
	default:
		return "Invalid value"
	}
}
