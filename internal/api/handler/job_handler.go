package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/dto"
	"github.com/cuongbtq/job-board/internal/api/model"
	"github.com/cuongbtq/job-board/shared/logger"
	"github.com/gin-gonic/gin"
)

// ListJobs handles GET /api/v1/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, h.logger, "Invalid query parameters", err)
		return
	}

	page, err := h.jobs.List(c.Request.Context(), req.Query())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListJobsResponse(page))
}

// GetJob handles GET /api/v1/jobs/:id
// The job's applications are included when the caller owns it
func (h *JobHandler) GetJob(c *gin.Context) {
	detail, err := h.jobs.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJobDetail(detail))
}

// CreateJob handles POST /api/v1/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "Invalid request body", err)
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), principal(c), req.Input())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewJob(job))
}

// UpdateJob handles PUT /api/v1/jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dto.JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "Invalid request body", err)
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), principal(c), c.Param("id"), req.Input())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJob(job))
}

// UpdateJobStatus handles PATCH /api/v1/jobs/:id/status
// A missing body or empty status toggles between ACTIVE and CLOSED
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	var req dto.JobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, h.logger, "Invalid request body", err)
		return
	}

	var (
		job *model.Job
		err error
	)
	if req.Status == "" {
		job, err = h.jobs.ToggleStatus(c.Request.Context(), principal(c), c.Param("id"))
	} else {
		job, err = h.jobs.SetStatus(c.Request.Context(), principal(c), c.Param("id"), domain.JobStatus(req.Status))
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewJob(job))
}

// DeleteJob handles DELETE /api/v1/jobs/:id
// Applications and their status logs are removed with the job
func (h *JobHandler) DeleteJob(c *gin.Context) {
	jobID := c.Param("id")
	if err := h.jobs.Delete(c.Request.Context(), principal(c), jobID); err != nil {
		writeError(c, h.logger, err)
		return
	}

	logger.FromContext(c.Request.Context(), h.logger).Info("Job removed", slog.String("job_id", jobID))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
