package dto

import (
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/internal/api/validation"
)

// ProfileRequest changes only the fields that are present
type ProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
}

func (r ProfileRequest) Input() validation.ProfileInput {
	return validation.ProfileInput{
		Name:     r.Name,
		Phone:    r.Phone,
		Location: r.Location,
	}
}

type ProfileDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func NewProfile(user *model.User) ProfileDTO {
	return ProfileDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		Phone:     user.Phone.String,
		Location:  user.Location.String,
		CreatedAt: formatTime(user.CreatedAt),
	}
}
