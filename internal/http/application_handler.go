package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bicosteve/job-board-api/internal/service"
)

// ApplicationHandler mantiene dependencias para los endpoints de postulaciones.
type ApplicationHandler struct {
	logger  *zap.Logger
	appServ *service.ApplicationService
}

func NewApplicationHandler(logger *zap.Logger, appServ *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		logger:  logger,
		appServ: appServ,
	}
}

// Apply maneja POST /v0/api/jobs/:id/applications.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || jobID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	var req struct {
		CoverLetter string `json:"cover_letter"`
		ResumeURL   string `json:"resume_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid application request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, err := h.appServ.Apply(c.Request.Context(), claims.AccountID, service.ApplicationInput{
		JobID:       jobID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		case errors.Is(err, service.ErrJobNotOpenForApplicant):
			c.JSON(http.StatusBadRequest, gin.H{"error": "job not open for applications"})
		case errors.Is(err, service.ErrAlreadyApplied):
			c.JSON(http.StatusBadRequest, gin.H{"error": "application already exists"})
		default:
			h.logger.Error("apply failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create application"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"application_id": id})
}

// ListJobApplications maneja GET /v0/api/jobs/:id/applications (solo admins).
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || jobID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	apps, err := h.appServ.ListJobApplications(c.Request.Context(), jobID, page, limit)
	if err != nil {
		h.logger.Error("list job applications failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps, "page": page, "limit": limit})
}

// ListMyApplications maneja GET /v0/api/applications.
func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	apps, err := h.appServ.ListUserApplications(c.Request.Context(), claims.AccountID)
	if err != nil {
		h.logger.Error("list user applications failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// UpdateApplication maneja PUT /v0/api/applications/:id (solo admins).
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	applicationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || applicationID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}

	var req struct {
		Status int `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid application update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.appServ.UpdateApplication(c.Request.Context(), applicationID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidApplication):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		default:
			h.logger.Error("update application failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update application"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "application updated"})
}
