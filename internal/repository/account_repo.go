package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/bicosteve/job-board-api/internal/domain"
)

// DB es el subconjunto de pgxpool.Pool que usan los repositorios.
// Mantenerlo chico permite testear con pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AccountRepository define el contrato de persistencia para cuentas.
// Las mutaciones devuelven filas afectadas: el orquestador decide qué
// significa cero.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
	FindByID(ctx context.Context, id int64) (domain.Account, error)
	Insert(ctx context.Context, email, username, passwordHash, role string, status int) (int64, error)
	SetStatus(ctx context.Context, email string, status int) (int64, error)
	SetPasswordHash(ctx context.Context, email, hash string) (int64, error)
	SetResetToken(ctx context.Context, email, token string) (int64, error)
	GetResetToken(ctx context.Context, email string) (string, time.Time, error)
	SetDeactivated(ctx context.Context, email string, deactivated bool) (int64, error)
}

// PgAccountRepository implementa AccountRepository sobre pgx.
type PgAccountRepository struct {
	db DB
}

func NewPgAccountRepository(db DB) *PgAccountRepository {
	return &PgAccountRepository{db: db}
}

const accountColumns = `id, email, username, password_hash, role, status, is_deactivated, COALESCE(reset_token, ''), created_at, updated_at`

func (r *PgAccountRepository) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.scanAccount(r.db.QueryRow(ctx, query, email))
}

func (r *PgAccountRepository) FindByID(ctx context.Context, id int64) (domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *PgAccountRepository) scanAccount(row pgx.Row) (domain.Account, error) {
	var a domain.Account
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Username,
		&a.PasswordHash,
		&a.Role,
		&a.Status,
		&a.IsDeactivated,
		&a.ResetToken,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, err
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}
	return a, nil
}

func (r *PgAccountRepository) Insert(ctx context.Context, email, username, passwordHash, role string, status int) (int64, error) {
	const query = `
		INSERT INTO accounts (email, username, password_hash, role, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	tag, err := r.db.Exec(ctx, query, email, username, passwordHash, role, status)
	if err != nil {
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgAccountRepository) SetStatus(ctx context.Context, email string, status int) (int64, error) {
	const query = `
		UPDATE accounts SET status = $2, updated_at = now() WHERE email = $1
	`
	tag, err := r.db.Exec(ctx, query, email, status)
	if err != nil {
		return 0, fmt.Errorf("set account status: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SetPasswordHash limpia además la copia durable del reset token: un token
// consumido no puede volver a redimirse por la vía de respaldo.
func (r *PgAccountRepository) SetPasswordHash(ctx context.Context, email, hash string) (int64, error) {
	const query = `
		UPDATE accounts SET password_hash = $2, reset_token = NULL, updated_at = now() WHERE email = $1
	`
	tag, err := r.db.Exec(ctx, query, email, hash)
	if err != nil {
		return 0, fmt.Errorf("set password hash: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgAccountRepository) SetResetToken(ctx context.Context, email, token string) (int64, error) {
	const query = `
		UPDATE accounts SET reset_token = $2, updated_at = now() WHERE email = $1
	`
	tag, err := r.db.Exec(ctx, query, email, token)
	if err != nil {
		return 0, fmt.Errorf("set reset token: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetResetToken devuelve la copia durable del token y su updated_at.
// Una fila sin token se reporta como pgx.ErrNoRows.
func (r *PgAccountRepository) GetResetToken(ctx context.Context, email string) (string, time.Time, error) {
	const query = `
		SELECT reset_token, updated_at FROM accounts WHERE email = $1
	`
	var token *string
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, query, email).Scan(&token, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", time.Time{}, err
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("get reset token: %w", err)
	}
	if token == nil || *token == "" {
		return "", time.Time{}, pgx.ErrNoRows
	}
	return *token, updatedAt, nil
}

func (r *PgAccountRepository) SetDeactivated(ctx context.Context, email string, deactivated bool) (int64, error) {
	const query = `
		UPDATE accounts SET is_deactivated = $2, updated_at = now() WHERE email = $1
	`
	tag, err := r.db.Exec(ctx, query, email, deactivated)
	if err != nil {
		return 0, fmt.Errorf("set deactivated: %w", err)
	}
	return tag.RowsAffected(), nil
}
