package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bicosteve/job-board-api/internal/domain"
	"github.com/bicosteve/job-board-api/internal/repository"
)

var (
	ErrJobNotFound = errors.New("job not found")
	ErrInvalidJob  = errors.New("invalid job data")
)

// JobService cubre publicación y consulta de ofertas.
type JobService struct {
	logger *zap.Logger
	jobs   repository.JobRepository
}

func NewJobService(logger *zap.Logger, jobs repository.JobRepository) *JobService {
	return &JobService{logger: logger, jobs: jobs}
}

type JobInput struct {
	Title          string
	Description    string
	Requirements   string
	Location       string
	EmploymentType string
	SalaryRange    string
	CompanyName    string
	ApplicationURL string
	Deadline       *time.Time
	Status         string
}

func (s *JobService) AddJob(ctx context.Context, adminID int64, input JobInput) (int64, error) {
	job, err := jobFromInput(adminID, input)
	if err != nil {
		return 0, err
	}

	id, err := s.jobs.Insert(ctx, job)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	s.logger.Info("job created", zap.Int64("job_id", id), zap.Int64("admin_id", adminID))
	return id, nil
}

func (s *JobService) ListJobs(ctx context.Context, page, limit int) ([]domain.Job, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	jobs, err := s.jobs.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return jobs, nil
}

func (s *JobService) GetJob(ctx context.Context, jobID int64) (domain.Job, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Job{}, ErrJobNotFound
		}
		return domain.Job{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return job, nil
}

// UpdateJob no distingue entre oferta inexistente y oferta de otro admin:
// ambas terminan en cero filas afectadas.
func (s *JobService) UpdateJob(ctx context.Context, jobID, adminID int64, input JobInput) error {
	job, err := jobFromInput(adminID, input)
	if err != nil {
		return err
	}

	rows, err := s.jobs.Update(ctx, jobID, adminID, job)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if rows < 1 {
		return ErrJobNotFound
	}

	s.logger.Info("job updated", zap.Int64("job_id", jobID), zap.Int64("admin_id", adminID))
	return nil
}

func jobFromInput(adminID int64, input JobInput) (domain.Job, error) {
	employment, err := convertEmploymentType(input.EmploymentType)
	if err != nil {
		return domain.Job{}, err
	}
	status, err := convertJobStatus(input.Status)
	if err != nil {
		return domain.Job{}, err
	}
	return domain.Job{
		AdminID:        adminID,
		Title:          input.Title,
		Description:    input.Description,
		Requirements:   input.Requirements,
		Location:       input.Location,
		EmploymentType: employment,
		SalaryRange:    input.SalaryRange,
		CompanyName:    input.CompanyName,
		ApplicationURL: input.ApplicationURL,
		Deadline:       input.Deadline,
		Status:         status,
	}, nil
}

func convertEmploymentType(employment string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(employment)) {
	case "full time":
		return domain.EmploymentFullTime, nil
	case "part time":
		return domain.EmploymentPartTime, nil
	case "contract":
		return domain.EmploymentContract, nil
	case "internship":
		return domain.EmploymentInternship, nil
	default:
		return 0, fmt.Errorf("%w: employment type %q not allowed", ErrInvalidJob, employment)
	}
}

func convertJobStatus(jobStatus string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(jobStatus)) {
	case "open":
		return domain.JobOpen, nil
	case "closed":
		return domain.JobClosed, nil
	case "draft":
		return domain.JobDraft, nil
	default:
		return 0, fmt.Errorf("%w: job status %q not allowed", ErrInvalidJob, jobStatus)
	}
}
