package validation

import "strings"

// ProfileInput updates the caller's profile; nil fields are left unchanged
type ProfileInput struct {
	Name     *string `json:"name" validate:"omitnil,min=2,max=100"`
	Phone    *string `json:"phone" validate:"omitnil,phone"`
	Location *string `json:"location" validate:"omitnil,min=1,max=100"`
}

func Profile(in ProfileInput) (ProfileInput, error) {
	in.Name = trimmed(in.Name)
	in.Phone = trimmed(in.Phone)
	in.Location = trimmed(in.Location)
	return in, Struct(in)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
