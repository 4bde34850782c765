package domain

import "time"

const (
	StatusUnverified = 0
	StatusVerified   = 1
)

const (
	RoleApplicant = "applicant"
	RoleAdmin     = "admin"
)

// Account es la fila de identidad compartida por aplicantes y admins.
type Account struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"`
	Status        int       `json:"status"`
	IsDeactivated bool      `json:"is_deactivated"`
	ResetToken    string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
