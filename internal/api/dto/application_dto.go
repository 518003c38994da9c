package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// ApplicationSubmitRequest payload for applying to a job.
type ApplicationSubmitRequest struct {
	JobID       string `json:"jobId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CoverLetter string `json:"coverLetter"`
}

// RoleRefView is a user reference with its fixed role tag.
type RoleRefView struct {
	User string `json:"user"`
	Role string `json:"role"`
}

// ResumeView points at an externally stored resume.
type ResumeView struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// ApplicationView is the outward shape of a submission.
type ApplicationView struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	CoverLetter string      `json:"coverLetter"`
	Resume      *ResumeView `json:"resume,omitempty"`
	Applicant   RoleRefView `json:"applicantId"`
	Employer    RoleRefView `json:"employerId"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewApplicationView maps a domain application to its outward shape.
func NewApplicationView(app *domain.Application) ApplicationView {
	view := ApplicationView{
		ID:          app.ID,
		Name:        app.Name,
		Email:       app.Email,
		Phone:       app.Phone,
		CoverLetter: app.CoverLetter,
		Applicant:   RoleRefView{User: app.Applicant.User, Role: string(app.Applicant.Role)},
		Employer:    RoleRefView{User: app.Employer.User, Role: string(app.Employer.Role)},
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
	if app.Resume != nil {
		view.Resume = &ResumeView{PublicID: app.Resume.PublicID, URL: app.Resume.URL}
	}
	return view
}

// NewApplicationViews maps a slice of domain applications.
func NewApplicationViews(apps []domain.Application) []ApplicationView {
	views := make([]ApplicationView, 0, len(apps))
	for i := range apps {
		views = append(views, NewApplicationView(&apps[i]))
	}
	return views
}
