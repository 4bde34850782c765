package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bicosteve/job-board-api/internal/service"
)

// JobHandler mantiene dependencias para los endpoints de ofertas.
type JobHandler struct {
	logger  *zap.Logger
	jobServ *service.JobService
}

func NewJobHandler(logger *zap.Logger, jobServ *service.JobService) *JobHandler {
	return &JobHandler{
		logger:  logger,
		jobServ: jobServ,
	}
}

type jobRequest struct {
	Title          string `json:"title" binding:"required,max=100"`
	Description    string `json:"description" binding:"required,max=1000"`
	Requirements   string `json:"requirements"`
	Location       string `json:"location" binding:"required,max=100"`
	EmploymentType string `json:"employment_type" binding:"required"`
	SalaryRange    string `json:"salary_range"`
	CompanyName    string `json:"company_name" binding:"required,max=100"`
	ApplicationURL string `json:"application_url"`
	Deadline       string `json:"deadline"`
	Status         string `json:"status" binding:"required"`
}

func (r jobRequest) toInput() (service.JobInput, error) {
	input := service.JobInput{
		Title:          r.Title,
		Description:    r.Description,
		Requirements:   r.Requirements,
		Location:       r.Location,
		EmploymentType: r.EmploymentType,
		SalaryRange:    r.SalaryRange,
		CompanyName:    r.CompanyName,
		ApplicationURL: r.ApplicationURL,
		Status:         r.Status,
	}
	if r.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", r.Deadline)
		if err != nil {
			return service.JobInput{}, err
		}
		input.Deadline = &deadline
	}
	return input, nil
}

// CreateJob maneja POST /v0/api/jobs (solo admins).
func (h *JobHandler) CreateJob(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid job request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline date"})
		return
	}

	id, err := h.jobServ.AddJob(c.Request.Context(), claims.AccountID, input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidJob) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("create job failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create job"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"job_id": id})
}

// ListJobs maneja GET /v0/api/jobs?page=&limit=.
func (h *JobHandler) ListJobs(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	jobs, err := h.jobServ.ListJobs(c.Request.Context(), page, limit)
	if err != nil {
		h.logger.Error("list jobs failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "page": page, "limit": limit})
}

// GetJob maneja GET /v0/api/jobs/:id.
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || jobID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.jobServ.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		h.logger.Error("get job failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get job"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"job": job})
}

// UpdateJob maneja PUT /v0/api/jobs/:id (solo el admin dueño).
func (h *JobHandler) UpdateJob(c *gin.Context) {
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

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid job update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline date"})
		return
	}

	if err := h.jobServ.UpdateJob(c.Request.Context(), jobID, claims.AccountID, input); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidJob):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		default:
			h.logger.Error("update job failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update job"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "job updated"})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return fallback
	}
	return val
}
