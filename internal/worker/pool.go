package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-board/internal/worker/domain"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	// in-flight notifications finish even after shutdown begins
	processCtx := context.WithoutCancel(ctx)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(processCtx, i)
	}
}

// workerLoop processes messages until the channel closes or Stop is called
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)

	for {
		select {
		case <-w.stopChan:
			w.logger.Info("Worker goroutine stopping - stopChan closed",
				slog.String("worker_name", workerName),
			)
			return

		case msg, ok := <-w.messages:
			if !ok {
				w.logger.Debug("Worker goroutine stopping - channel closed",
					slog.String("worker_name", workerName),
				)
				return
			}

			err := w.processMessage(ctx, msg)
			w.settle(workerName, msg, err)
		}
	}
}

// settle acks or nacks a delivery according to the processing result
func (w *Worker) settle(workerName string, msg *domain.Message, err error) {
	log := w.logger.With(
		slog.String("worker_name", workerName),
		slog.String("status_log_id", msg.Event.StatusLogID),
	)

	if err == nil || errors.Is(err, domain.ErrAlreadyNotified) {
		if ackErr := msg.Delivery.Ack(false); ackErr != nil {
			log.Error("Failed to ACK message", slog.String("error", ackErr.Error()))
		}
		return
	}

	requeue := w.shouldRequeue(msg, err)
	log.Error("Notification failed",
		slog.String("error", err.Error()),
		slog.Bool("requeue", requeue),
	)

	if nackErr := msg.Delivery.Nack(false, requeue); nackErr != nil {
		log.Error("Failed to NACK message", slog.String("error", nackErr.Error()))
	}
}

// shouldRequeue retries transient failures once; a redelivered message
// that fails again is dead-lettered
func (w *Worker) shouldRequeue(msg *domain.Message, err error) bool {
	if errors.Is(err, domain.ErrRecipientNotFound) || errors.Is(err, domain.ErrInvalidPayload) {
		return false
	}

	var retryableErr *domain.RetryableError
	if errors.As(err, &retryableErr) {
		return !msg.Delivery.Redelivered
	}

	return false
}
