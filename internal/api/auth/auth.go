// Package auth resolves the session token issued at sign-in into the
// principal that every service call receives.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongbtq/job-board/internal/api/domain"
	goredis "github.com/redis/go-redis/v9"
)

// Principal is the authenticated caller of a request
type Principal struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == domain.RoleAdmin
}

func (p *Principal) IsUser() bool {
	return p != nil && p.Role == domain.RoleUser
}

// Resolver maps a session token to its principal. A token that is unknown
// or expired resolves to a nil principal and a nil error.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Principal, error)
}

// SessionStore reads sessions written by the sign-in flow from Redis
type SessionStore struct {
	rdb    *goredis.Client
	prefix string
	logger *slog.Logger
}

func NewSessionStore(rdb *goredis.Client, prefix string, logger *slog.Logger) *SessionStore {
	return &SessionStore{
		rdb:    rdb,
		prefix: prefix,
		logger: logger,
	}
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, nil
	}

	data, err := s.rdb.Get(ctx, s.prefix+token).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var principal Principal
	if err := json.Unmarshal(data, &principal); err != nil {
		s.logger.Warn("Discarding malformed session", slog.String("error", err.Error()))
		return nil, nil
	}
	if principal.UserID == "" || !principal.Role.Valid() {
		s.logger.Warn("Discarding session without user or role",
			slog.String("user_id", principal.UserID),
			slog.String("role", string(principal.Role)),
		)
		return nil, nil
	}

	return &principal, nil
}

type contextKey struct{}

// WithPrincipal returns a copy of ctx carrying p
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal stored in ctx, or nil
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(contextKey{}).(*Principal)
	return p
}
