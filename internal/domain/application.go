package domain

import "time"

// Estados de una postulación, 1..4 igual que en el esquema original.
const (
	ApplicationApplied   = 1
	ApplicationReviewing = 2
	ApplicationRejected  = 3
	ApplicationAccepted  = 4
)

type Application struct {
	ID          int64     `json:"application_id"`
	UserID      int64     `json:"user_id"`
	JobID       int64     `json:"job_id"`
	Status      int       `json:"status"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
