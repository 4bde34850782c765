package domain

import "time"

// Codigos numericos para employment_type tal como se guardan en la tabla jobs.
const (
	EmploymentFullTime   = 1
	EmploymentPartTime   = 2
	EmploymentContract   = 3
	EmploymentInternship = 4
)

// Codigos numericos para el estado de una publicación.
const (
	JobOpen   = 5
	JobClosed = 6
	JobDraft  = 7
)

type Job struct {
	ID             int64      `json:"job_id"`
	AdminID        int64      `json:"admin_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Requirements   string     `json:"requirements,omitempty"`
	Location       string     `json:"location"`
	EmploymentType int        `json:"employment_type"`
	SalaryRange    string     `json:"salary_range,omitempty"`
	CompanyName    string     `json:"company_name"`
	ApplicationURL string     `json:"application_url,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	Status         int        `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
