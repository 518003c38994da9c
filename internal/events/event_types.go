package events

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventJobPosted            EventType = "job_posted"
	EventJobUpdated           EventType = "job_updated"
	EventApplicationSubmitted EventType = "application_submitted"
	EventApplicationWithdrawn EventType = "application_withdrawn"
)

// Actor encapsulates the acting user for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// JobPostedPayload payload.
type JobPostedPayload struct {
	JobID       string         `json:"job_id"`
	Title       string         `json:"title"`
	Type        domain.JobType `json:"type"`
	CompanyName string         `json:"company_name"`
}

// JobUpdatedPayload payload.
type JobUpdatedPayload struct {
	JobID   string `json:"job_id"`
	Expired bool   `json:"expired"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID string `json:"application_id"`
	JobID         string `json:"job_id"`
	EmployerID    string `json:"employer_id"`
}

// ApplicationWithdrawnPayload payload.
type ApplicationWithdrawnPayload struct {
	ApplicationID string `json:"application_id"`
}
