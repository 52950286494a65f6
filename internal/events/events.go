// Package events defines the messages the API publishes for the
// notification worker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/google/uuid"
)

// RoutingKeyStatusChanged is published after every committed status log
const RoutingKeyStatusChanged = "application.status_changed"

// StatusChanged announces a new status log row, including the initial PENDING one
type StatusChanged struct {
	StatusLogID   string                   `json:"status_log_id"`
	ApplicationID string                   `json:"application_id"`
	JobID         string                   `json:"job_id"`
	UserID        string                   `json:"user_id"`
	Status        domain.ApplicationStatus `json:"status"`
	Notes         string                   `json:"notes,omitempty"`
	OccurredAt    time.Time                `json:"occurred_at"`
}

// Decode parses and checks a StatusChanged message body
func Decode(body []byte) (*StatusChanged, error) {
	var ev StatusChanged
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if _, err := uuid.Parse(ev.StatusLogID); err != nil {
		return nil, fmt.Errorf("invalid status_log_id %q: %w", ev.StatusLogID, err)
	}
	if _, err := uuid.Parse(ev.ApplicationID); err != nil {
		return nil, fmt.Errorf("invalid application_id %q: %w", ev.ApplicationID, err)
	}
	if !ev.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", ev.Status)
	}

	return &ev, nil
}

type jsonPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}

// Publisher sends events to the configured exchange
type Publisher struct {
	client     jsonPublisher
	routingKey string
	logger     *slog.Logger
}

// NewPublisher returns a publisher; an empty routingKey uses RoutingKeyStatusChanged
func NewPublisher(client jsonPublisher, routingKey string, logger *slog.Logger) *Publisher {
	if routingKey == "" {
		routingKey = RoutingKeyStatusChanged
	}
	return &Publisher{
		client:     client,
		routingKey: routingKey,
		logger:     logger,
	}
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, ev StatusChanged) error {
	if err := p.client.PublishJSON(ctx, p.routingKey, ev); err != nil {
		return fmt.Errorf("failed to publish status change: %w", err)
	}

	p.logger.Debug("Published status change",
		slog.String("application_id", ev.ApplicationID),
		slog.String("status_log_id", ev.StatusLogID),
		slog.String("status", string(ev.Status)),
	)
	return nil
}
