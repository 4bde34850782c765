package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bicosteve/job-board-api/internal/domain"
)

// JobRepository define el contrato de persistencia para publicaciones.
type JobRepository interface {
	Insert(ctx context.Context, job domain.Job) (int64, error)
	List(ctx context.Context, limit, offset int) ([]domain.Job, error)
	Get(ctx context.Context, jobID int64) (domain.Job, error)
	Update(ctx context.Context, jobID, adminID int64, job domain.Job) (int64, error)
}

type PgJobRepository struct {
	db DB
}

func NewPgJobRepository(db DB) *PgJobRepository {
	return &PgJobRepository{db: db}
}

const jobColumns = `job_id, admin_id, title, description, requirements, location, employment_type, salary_range, company_name, application_url, deadline, status, created_at, updated_at`

func (r *PgJobRepository) Insert(ctx context.Context, job domain.Job) (int64, error) {
	const query = `
		INSERT INTO jobs (admin_id, title, description, requirements, location, employment_type, salary_range, company_name, application_url, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING job_id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		job.AdminID,
		job.Title,
		job.Description,
		job.Requirements,
		job.Location,
		job.EmploymentType,
		job.SalaryRange,
		job.CompanyName,
		job.ApplicationURL,
		job.Deadline,
		job.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert job: %w", err)
	}
	return id, nil
}

func (r *PgJobRepository) List(ctx context.Context, limit, offset int) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY job_id LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

func (r *PgJobRepository) Get(ctx context.Context, jobID int64) (domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1`
	job, err := scanJob(r.db.QueryRow(ctx, query, jobID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Job{}, err
	}
	if err != nil {
		return domain.Job{}, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// Update solo toca filas del admin dueño de la publicación.
func (r *PgJobRepository) Update(ctx context.Context, jobID, adminID int64, job domain.Job) (int64, error) {
	const query = `
		UPDATE jobs
		SET title = $3, description = $4, requirements = $5, location = $6,
		    employment_type = $7, salary_range = $8, company_name = $9,
		    application_url = $10, deadline = $11, status = $12, updated_at = now()
		WHERE job_id = $1 AND admin_id = $2
	`
	tag, err := r.db.Exec(ctx, query,
		jobID,
		adminID,
		job.Title,
		job.Description,
		job.Requirements,
		job.Location,
		job.EmploymentType,
		job.SalaryRange,
		job.CompanyName,
		job.ApplicationURL,
		job.Deadline,
		job.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("update job: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanJob(row pgx.Row) (domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID,
		&j.AdminID,
		&j.Title,
		&j.Description,
		&j.Requirements,
		&j.Location,
		&j.EmploymentType,
		&j.SalaryRange,
		&j.CompanyName,
		&j.ApplicationURL,
		&j.Deadline,
		&j.Status,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return domain.Job{}, err
	}
	return j, nil
}
