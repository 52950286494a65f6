package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/auth"
	"github.com/cuongbtq/job-board/internal/api/blob"
	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/internal/api/service"
	"github.com/cuongbtq/job-board/internal/api/validation"
	"github.com/cuongbtq/job-board/shared/logger"
	"github.com/gin-gonic/gin"
)

type JobService interface {
	Create(ctx context.Context, p *auth.Principal, in validation.JobInput) (*model.Job, error)
	Get(ctx context.Context, p *auth.Principal, jobID string) (*service.JobDetail, error)
	Update(ctx context.Context, p *auth.Principal, jobID string, in validation.JobInput) (*model.Job, error)
	Delete(ctx context.Context, p *auth.Principal, jobID string) error
	SetStatus(ctx context.Context, p *auth.Principal, jobID string, status domain.JobStatus) (*model.Job, error)
	ToggleStatus(ctx context.Context, p *auth.Principal, jobID string) (*model.Job, error)
	List(ctx context.Context, q service.JobQuery) (*service.JobPage, error)
}

type ApplicationService interface {
	Submit(ctx context.Context, p *auth.Principal, in validation.ApplicationInput) (*model.Application, error)
	List(ctx context.Context, p *auth.Principal, q service.ApplicationQuery) (*service.ApplicationPage, error)
	Transition(ctx context.Context, p *auth.Principal, applicationID string, status domain.ApplicationStatus, notes string) (*model.Application, error)
	ListStatusLogs(ctx context.Context, p *auth.Principal, applicationID string) ([]model.StatusLog, error)
}

type ProfileService interface {
	Get(ctx context.Context, p *auth.Principal) (*model.User, error)
	Update(ctx context.Context, p *auth.Principal, in validation.ProfileInput) (*model.User, error)
}

// ResumeStore keeps uploaded resume files
type ResumeStore interface {
	PutResume(ctx context.Context, data []byte) (*blob.Object, error)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger         *slog.Logger
	Jobs           JobService
	Applications   ApplicationService
	Profiles       ProfileService
	Resumes        ResumeStore
	MaxUploadBytes int64
}

type JobHandler struct {
	logger *slog.Logger
	jobs   JobService
}

func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{logger: deps.Logger, jobs: deps.Jobs}
}

type ApplicationHandler struct {
	logger       *slog.Logger
	applications ApplicationService
}

func NewApplicationHandler(deps *Dependencies) *ApplicationHandler {
	return &ApplicationHandler{logger: deps.Logger, applications: deps.Applications}
}

type ProfileHandler struct {
	logger   *slog.Logger
	profiles ProfileService
}

func NewProfileHandler(deps *Dependencies) *ProfileHandler {
	return &ProfileHandler{logger: deps.Logger, profiles: deps.Profiles}
}

type UploadHandler struct {
	logger   *slog.Logger
	resumes  ResumeStore
	maxBytes int64
}

func NewUploadHandler(deps *Dependencies) *UploadHandler {
	return &UploadHandler{logger: deps.Logger, resumes: deps.Resumes, maxBytes: deps.MaxUploadBytes}
}

func principal(c *gin.Context) *auth.Principal {
	return auth.FromContext(c.Request.Context())
}

// writeError maps service errors onto status codes. Internal causes are
// logged and never returned to the client.
func writeError(c *gin.Context, fallback *slog.Logger, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, domain.ErrDuplicateApplication):
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrDuplicateApplication.Error()})
	default:
		logger.FromContext(c.Request.Context(), fallback).Error("Request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, fallback *slog.Logger, msg string, err error) {
	logger.FromContext(c.Request.Context(), fallback).Warn(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
