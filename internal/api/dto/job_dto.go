package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// JobCreateRequest payload for posting a job.
type JobCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	CompanyName string `json:"companyname"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Salary      string `json:"salary"`
}

// JobUpdateRequest payload for a partial update; absent fields are left
// untouched.
type JobUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Type        *string `json:"type"`
	CompanyName *string `json:"companyname"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	Salary      *string `json:"salary"`
	Expired     *bool   `json:"expired"`
}

// JobView is the outward shape of a posting.
type JobView struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	CompanyName string    `json:"companyname"`
	Country     string    `json:"country"`
	City        string    `json:"city"`
	Salary      string    `json:"salary"`
	Expired     bool      `json:"expired"`
	PostedBy    string    `json:"postedBy"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewJobView maps a domain job to its outward shape.
func NewJobView(job *domain.Job) JobView {
	return JobView{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Category:    job.Category,
		Type:        string(job.Type),
		CompanyName: job.CompanyName,
		Country:     job.Country,
		City:        job.City,
		Salary:      job.Salary,
		Expired:     job.Expired,
		PostedBy:    job.PostedBy,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}

// NewJobViews maps a slice of domain jobs.
func NewJobViews(jobs []domain.Job) []JobView {
	views := make([]JobView, 0, len(jobs))
	for i := range jobs {
		views = append(views, NewJobView(&jobs[i]))
	}
	return views
}
