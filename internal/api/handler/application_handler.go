package handler

import (
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/dto"
	"github.com/gin-gonic/gin"
)

// SubmitApplication handles POST /api/v1/applications
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "Invalid request body", err)
		return
	}

	app, err := h.applications.Submit(c.Request.Context(), principal(c), req.Input())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewApplication(app))
}

// ListApplications handles GET /api/v1/applications
// Job seekers only ever see their own applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var req dto.ListApplicationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, h.logger, "Invalid query parameters", err)
		return
	}

	page, err := h.applications.List(c.Request.Context(), principal(c), req.Query())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListApplicationsResponse(page))
}

// UpdateApplicationStatus handles PUT /api/v1/applications/:id/status
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "Invalid request body", err)
		return
	}

	app, err := h.applications.Transition(c.Request.Context(), principal(c),
		c.Param("id"), domain.ApplicationStatus(req.Status), req.Notes)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewApplication(app))
}

// ListStatusLogs handles GET /api/v1/applications/:id/logs
func (h *ApplicationHandler) ListStatusLogs(c *gin.Context) {
	logs, err := h.applications.ListStatusLogs(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListStatusLogsResponse{StatusLogs: dto.NewStatusLogs(logs)})
}
