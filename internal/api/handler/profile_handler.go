package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/cuongbtq/job-board/internal/api/dto"
	"github.com/cuongbtq/job-board/shared/logger"
	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for boundaries and part headers
const multipartOverhead = 64 << 10

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.profiles.Get(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfile(user))
}

// UpdateProfile handles PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, "Invalid request body", err)
		return
	}

	user, err := h.profiles.Update(c.Request.Context(), principal(c), req.Input())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProfile(user))
}

// UploadResume handles POST /api/v1/uploads
// The multipart field "file" must hold a PDF no larger than the configured limit
func (h *UploadHandler) UploadResume(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, h.logger, domain.FieldError("file", fmt.Sprintf("File size must be less than %dMB", h.maxBytes>>20)))
			return
		}
		writeError(c, h.logger, domain.FieldError("file", "No file uploaded"))
		return
	}

	file, err := header.Open()
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	limit := h.maxBytes
	if limit <= 0 {
		limit = header.Size
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		writeError(c, h.logger, fmt.Errorf("read upload: %w", err))
		return
	}

	obj, err := h.resumes.PutResume(c.Request.Context(), data)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	logger.FromContext(c.Request.Context(), h.logger).Info("Resume uploaded",
		slog.String("key", obj.Key),
		slog.Int("size", len(data)),
	)
	c.JSON(http.StatusCreated, obj)
}
