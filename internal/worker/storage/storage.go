package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-board/internal/worker/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// foreignKeyViolation is reported when the claimed status log was deleted
const foreignKeyViolation = "23503"

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// ClaimDelivery records that the e-mail for a status log is being sent.
// A second claim for the same log returns ErrAlreadyNotified, which makes
// redelivered events harmless.
func (s *Storage) ClaimDelivery(ctx context.Context, statusLogID string) error {
	query := `
		INSERT INTO notification_deliveries (status_log_id, sent_at)
		VALUES ($1, NOW())
		ON CONFLICT (status_log_id) DO NOTHING
	`

	result, err := s.db.ExecContext(ctx, query, statusLogID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
			return domain.ErrRecipientNotFound
		}
		return fmt.Errorf("failed to claim delivery: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		s.logger.Info("Delivery already claimed",
			slog.String("status_log_id", statusLogID),
		)
		return domain.ErrAlreadyNotified
	}

	return nil
}

// ReleaseDelivery drops a claim so a retried event can send again
func (s *Storage) ReleaseDelivery(ctx context.Context, statusLogID string) error {
	query := `DELETE FROM notification_deliveries WHERE status_log_id = $1`

	if _, err := s.db.ExecContext(ctx, query, statusLogID); err != nil {
		return fmt.Errorf("failed to release delivery: %w", err)
	}
	return nil
}

// GetRecipient loads the applicant and job title of an application
func (s *Storage) GetRecipient(ctx context.Context, applicationID string) (*domain.Recipient, error) {
	query := `
		SELECT u.email, u.name, j.title AS job_title
		FROM applications a
		JOIN users u ON u.id = a.user_id
		JOIN jobs j ON j.id = a.job_id
		WHERE a.id = $1
	`

	var recipient domain.Recipient
	if err := s.db.GetContext(ctx, &recipient, query, applicationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to get recipient: %w", err)
	}

	return &recipient, nil
}
