package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cuongbtq/job-board/internal/worker/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	logID = "d1000000-0000-4000-8000-000000000001"
	appID = "e1000000-0000-4000-8000-000000000001"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStorage(sqlx.NewDb(db, "sqlmock"), slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func TestClaimDelivery(t *testing.T) {
	claim := regexp.QuoteMeta("INSERT INTO notification_deliveries")

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
		anyErr  bool
	}{
		{
			name: "claimed",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(claim).WithArgs(logID).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "already claimed",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(claim).WithArgs(logID).WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrAlreadyNotified,
		},
		{
			name: "status log deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(claim).WithArgs(logID).WillReturnError(&pq.Error{Code: foreignKeyViolation})
			},
			wantErr: domain.ErrRecipientNotFound,
		},
		{
			name: "database error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(claim).WithArgs(logID).WillReturnError(errors.New("connection reset"))
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStorage(t)
			tt.setup(mock)

			err := s.ClaimDelivery(context.Background(), logID)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReleaseDelivery(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notification_deliveries WHERE status_log_id = $1")).
		WithArgs(logID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.ReleaseDelivery(context.Background(), logID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecipient(t *testing.T) {
	query := regexp.QuoteMeta("SELECT u.email, u.name, j.title AS job_title")

	t.Run("found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs(appID).WillReturnRows(
			sqlmock.NewRows([]string{"email", "name", "job_title"}).
				AddRow("grace@example.com", "Grace", "Backend Engineer"),
		)

		got, err := s.GetRecipient(context.Background(), appID)

		require.NoError(t, err)
		assert.Equal(t, &domain.Recipient{Email: "grace@example.com", Name: "Grace", JobTitle: "Backend Engineer"}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("application deleted", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(query).WithArgs(appID).WillReturnRows(sqlmock.NewRows([]string{"email", "name", "job_title"}))

		_, err := s.GetRecipient(context.Background(), appID)

		assert.ErrorIs(t, err, domain.ErrRecipientNotFound)
	})
}
