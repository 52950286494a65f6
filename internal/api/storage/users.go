package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
)

func (s *Storage) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User

	err := s.db.GetContext(ctx, &user, `
		SELECT id, email, name, role, phone, location, created_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UpdateUserProfile writes the profile columns; email and role never change here
func (s *Storage) UpdateUserProfile(ctx context.Context, user *model.User) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = $1, phone = $2, location = $3
		WHERE id = $4
	`, user.Name, user.Phone, user.Location, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}

	return expectOneRow(result)
}
