package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/job-board/internal/metrics"
	"github.com/cuongbtq/job-board/internal/notify"
	"github.com/cuongbtq/job-board/internal/worker/domain"
)

// processMessage e-mails the applicant about one status change. The claim
// row is taken first and released again when the e-mail could not be sent.
func (w *Worker) processMessage(ctx context.Context, msg *domain.Message) error {
	start := time.Now()
	ev := msg.Event

	if w.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.sendTimeout)
		defer cancel()
	}

	if err := w.store.ClaimDelivery(ctx, ev.StatusLogID); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyNotified):
			w.logger.Info("Status change already notified, skipping",
				slog.String("status_log_id", ev.StatusLogID),
			)
			return err
		case errors.Is(err, domain.ErrRecipientNotFound):
			metrics.NotificationsFailed.WithLabelValues("recipient_gone").Inc()
			return err
		}
		metrics.NotificationsFailed.WithLabelValues("claim").Inc()
		return domain.NewRetryableError(fmt.Errorf("failed to claim delivery: %w", err))
	}

	recipient, err := w.store.GetRecipient(ctx, ev.ApplicationID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipientNotFound) {
			metrics.NotificationsFailed.WithLabelValues("recipient_gone").Inc()
			return err
		}
		w.release(ev.StatusLogID)
		metrics.NotificationsFailed.WithLabelValues("lookup").Inc()
		return domain.NewRetryableError(fmt.Errorf("failed to load recipient: %w", err))
	}

	email := notify.StatusMessage(recipient.Email, recipient.Name, recipient.JobTitle, ev.Status, ev.Notes)
	if err := w.sender.Send(ctx, email); err != nil {
		w.release(ev.StatusLogID)
		metrics.NotificationsFailed.WithLabelValues("send").Inc()
		return domain.NewRetryableError(err)
	}

	metrics.NotificationsSent.WithLabelValues(string(ev.Status)).Inc()
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())

	w.logger.Info("Applicant notified",
		slog.String("status_log_id", ev.StatusLogID),
		slog.String("application_id", ev.ApplicationID),
		slog.String("status", string(ev.Status)),
	)
	return nil
}

// release uses its own deadline so a timed-out send can still drop the claim
func (w *Worker) release(statusLogID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.store.ReleaseDelivery(ctx, statusLogID); err != nil {
		w.logger.Error("Failed to release delivery claim",
			slog.String("status_log_id", statusLogID),
			slog.String("error", err.Error()),
		)
	}
}
