package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FieldType tags both a custom question and the answers it accepts
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
)

// Valid reports whether t is a known field type
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect, FieldTypeRadio:
		return true
	}
	return false
}

// HasOptions reports whether answers must be chosen from a fixed option list
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio
}

// CustomField is an employer-defined question on a job's application form
type CustomField struct {
	ID       string    `json:"id" validate:"required,uuid"`
	Label    string    `json:"label" validate:"required"`
	Type     FieldType `json:"type" validate:"required,oneof=text textarea select radio"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty" validate:"omitempty,dive,required"`
}

// CustomFields is stored as a JSONB array, order preserved
type CustomFields []CustomField

// Value implements driver.Valuer
func (f CustomFields) Value() (driver.Value, error) {
	if f == nil {
		f = CustomFields{}
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner
func (f *CustomFields) Scan(src any) error {
	data, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("scan custom fields: %w", err)
	}
	if data == nil {
		*f = CustomFields{}
		return nil
	}
	return json.Unmarshal(data, f)
}

// ByID returns the field with the given id
func (f CustomFields) ByID(id string) (CustomField, bool) {
	for _, field := range f {
		if field.ID == id {
			return field, true
		}
	}
	return CustomField{}, false
}

// Answer is a tagged answer value; Type records which rule validated Value
type Answer struct {
	Type  FieldType `json:"type"`
	Value string    `json:"value"`
}

// Answers maps custom field ids to answers and is stored as a JSONB object
type Answers map[string]Answer

// Value implements driver.Valuer
func (a Answers) Value() (driver.Value, error) {
	if a == nil {
		a = Answers{}
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *Answers) Scan(src any) error {
	data, err := jsonBytes(src)
	if err != nil {
		return fmt.Errorf("scan answers: %w", err)
	}
	if data == nil {
		*a = Answers{}
		return nil
	}
	return json.Unmarshal(data, a)
}

func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", src)
	}
}
