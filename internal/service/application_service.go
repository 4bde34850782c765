package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bicosteve/job-board-api/internal/domain"
	"github.com/bicosteve/job-board-api/internal/repository"
)

var (
	ErrAlreadyApplied         = errors.New("application already exists")
	ErrApplicationNotFound    = errors.New("application not found")
	ErrInvalidApplication     = errors.New("invalid application data")
	ErrJobNotOpenForApplicant = errors.New("job not open for applications")
)

// ApplicationService cubre postulaciones de aplicantes y su gestión por admins.
type ApplicationService struct {
	logger       *zap.Logger
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
}

func NewApplicationService(logger *zap.Logger, applications repository.ApplicationRepository, jobs repository.JobRepository) *ApplicationService {
	return &ApplicationService{
		logger:       logger,
		applications: applications,
		jobs:         jobs,
	}
}

type ApplicationInput struct {
	JobID       int64
	CoverLetter string
	ResumeURL   string
}

// Apply registra una postulación, una sola por usuario y oferta.
func (s *ApplicationService) Apply(ctx context.Context, userID int64, input ApplicationInput) (int64, error) {
	job, err := s.jobs.Get(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrJobNotFound
		}
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if job.Status != domain.JobOpen {
		return 0, ErrJobNotOpenForApplicant
	}

	_, err = s.applications.FindByUserAndJob(ctx, userID, input.JobID)
	if err == nil {
		return 0, ErrAlreadyApplied
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	id, err := s.applications.Insert(ctx, domain.Application{
		UserID:      userID,
		JobID:       input.JobID,
		Status:      domain.ApplicationApplied,
		CoverLetter: input.CoverLetter,
		ResumeURL:   input.ResumeURL,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	s.logger.Info("application created", zap.Int64("application_id", id), zap.Int64("job_id", input.JobID))
	return id, nil
}

func (s *ApplicationService) ListJobApplications(ctx context.Context, jobID int64, page, limit int) ([]domain.Application, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	apps, err := s.applications.ListByJob(ctx, jobID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return apps, nil
}

func (s *ApplicationService) ListUserApplications(ctx context.Context, userID int64) ([]domain.Application, error) {
	apps, err := s.applications.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return apps, nil
}

func (s *ApplicationService) UpdateApplication(ctx context.Context, applicationID int64, status int) error {
	if status < domain.ApplicationApplied || status > domain.ApplicationAccepted {
		return fmt.Errorf("%w: status %d out of range", ErrInvalidApplication, status)
	}

	rows, err := s.applications.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if rows < 1 {
		return ErrApplicationNotFound
	}

	s.logger.Info("application updated", zap.Int64("application_id", applicationID), zap.Int("status", status))
	return nil
}
