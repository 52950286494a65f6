package service

import (
	"context"
	"log/slog"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/internal/api/validation"
)

type ProfileService struct {
	store  UserStore
	logger *slog.Logger
}

func NewProfileService(store UserStore, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, p *auth.Principal) (*model.User, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.store.GetUserByID(ctx, p.UserID)
}

// Update changes name, phone and location; email and role are fixed
func (s *ProfileService) Update(ctx context.Context, p *auth.Principal, in validation.ProfileInput) (*model.User, error) {
	if p == nil {
		return nil, domain.ErrUnauthorized
	}

	in, err := validation.Profile(in)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = model.NullString(*in.Phone)
	}
	if in.Location != nil {
		user.Location = model.NullString(*in.Location)
	}

	if err := s.store.UpdateUserProfile(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", slog.String("user_id", user.ID))
	return user, nil
}
