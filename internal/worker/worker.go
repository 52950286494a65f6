// Package worker consumes application status events and e-mails applicants.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/cuongbtq/job-board/internal/notify"
	"github.com/cuongbtq/job-board/internal/worker/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DeliverySource starts a consumer on the notification queue
type DeliverySource interface {
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
}

// NotificationStore tracks which status logs were already e-mailed
type NotificationStore interface {
	ClaimDelivery(ctx context.Context, statusLogID string) error
	ReleaseDelivery(ctx context.Context, statusLogID string) error
	GetRecipient(ctx context.Context, applicationID string) (*domain.Recipient, error)
}

// Sender delivers an e-mail
type Sender interface {
	Send(ctx context.Context, msg notify.Message) error
}

// Config holds worker configuration
type Config struct {
	Logger      *slog.Logger
	Source      DeliverySource
	Store       NotificationStore
	Sender      Sender
	Concurrency int
	// SendTimeout bounds a single notification, lookup and e-mail included
	SendTimeout time.Duration
}

// Worker represents the notification worker
type Worker struct {
	logger      *slog.Logger
	source      DeliverySource
	store       NotificationStore
	sender      Sender
	concurrency int
	sendTimeout time.Duration
	workerID    string

	messages chan *domain.Message
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	hostname, _ := os.Hostname()
	return &Worker{
		logger:      cfg.Logger,
		source:      cfg.Source,
		store:       cfg.Store,
		sender:      cfg.Sender,
		concurrency: concurrency,
		sendTimeout: cfg.SendTimeout,
		workerID:    fmt.Sprintf("notifier-%s-%d", hostname, os.Getpid()),
		messages:    make(chan *domain.Message, concurrency),
		stopChan:    make(chan struct{}),
	}
}

// Start consumes events until ctx is canceled or the delivery channel
// closes, then waits for in-flight notifications to finish.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("send_timeout", w.sendTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return err
	}

	w.spawnWorkerPool(ctx)
	w.startMessageDispatcher(ctx, deliveries)

	close(w.messages)
	w.wg.Wait()
	w.logger.Info("Worker drained", slog.String("worker_id", w.workerID))
	return nil
}

// Stop asks the pool to finish and waits for it
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
