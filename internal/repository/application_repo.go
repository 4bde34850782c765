package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bicosteve/job-board-api/internal/domain"
)

// ApplicationRepository define el contrato de persistencia para postulaciones.
type ApplicationRepository interface {
	Insert(ctx context.Context, app domain.Application) (int64, error)
	FindByUserAndJob(ctx context.Context, userID, jobID int64) (domain.Application, error)
	ListByJob(ctx context.Context, jobID int64, limit, offset int) ([]domain.Application, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, applicationID int64, status int) (int64, error)
}

type PgApplicationRepository struct {
	db DB
}

func NewPgApplicationRepository(db DB) *PgApplicationRepository {
	return &PgApplicationRepository{db: db}
}

const applicationColumns = `application_id, user_id, job_id, status, cover_letter, resume_url, created_at, updated_at`

func (r *PgApplicationRepository) Insert(ctx context.Context, app domain.Application) (int64, error) {
	const query = `
		INSERT INTO job_applications (user_id, job_id, status, cover_letter, resume_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING application_id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		app.UserID,
		app.JobID,
		app.Status,
		app.CoverLetter,
		app.ResumeURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert application: %w", err)
	}
	return id, nil
}

func (r *PgApplicationRepository) FindByUserAndJob(ctx context.Context, userID, jobID int64) (domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE user_id = $1 AND job_id = $2`
	app, err := scanApplication(r.db.QueryRow(ctx, query, userID, jobID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Application{}, err
	}
	if err != nil {
		return domain.Application{}, fmt.Errorf("find application: %w", err)
	}
	return app, nil
}

func (r *PgApplicationRepository) ListByJob(ctx context.Context, jobID int64, limit, offset int) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE job_id = $1 ORDER BY application_id LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, jobID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list job applications: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *PgApplicationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE user_id = $1 ORDER BY application_id`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user applications: %w", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *PgApplicationRepository) UpdateStatus(ctx context.Context, applicationID int64, status int) (int64, error) {
	const query = `
		UPDATE job_applications SET status = $2, updated_at = now() WHERE application_id = $1
	`
	tag, err := r.db.Exec(ctx, query, applicationID, status)
	if err != nil {
		return 0, fmt.Errorf("update application status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanApplication(row pgx.Row) (domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.JobID,
		&a.Status,
		&a.CoverLetter,
		&a.ResumeURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return domain.Application{}, err
	}
	return a, nil
}

func collectApplications(rows pgx.Rows) ([]domain.Application, error) {
	apps := make([]domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collect applications: %w", err)
	}
	return apps, nil
}
