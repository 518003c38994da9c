package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// ApplicationService coordinates submission workflows.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	dispatcher   events.Dispatcher
}

// ApplicationDependencies bundles requirements for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	JobRepo         repository.JobRepository
	Dispatcher      events.Dispatcher
}

// ApplicationSubmitInput describes the submission payload. Name, email and
// phone are the form values, independent of the applicant's account fields.
type ApplicationSubmitInput struct {
	JobID       string
	Name        string
	Email       string
	Phone       string
	CoverLetter string
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		dispatcher:   deps.Dispatcher,
	}
}

// Submit files an application against an existing job. Employers cannot
// apply. The employer reference is a snapshot of the job's poster at
// submission time; both references carry their fixed role tags.
func (s *ApplicationService) Submit(ctx context.Context, caller *domain.User, input ApplicationSubmitInput) (*domain.Application, error) {
	if caller.Role == domain.RoleEmployer {
		return nil, apperrors.NewForbidden("employers cannot apply for a job")
	}

	job, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": input.JobID})
		}
		return nil, err
	}

	if input.Name == "" || input.Email == "" || input.Phone == "" || input.CoverLetter == "" {
		return nil, apperrors.NewValidationError("all fields are required", nil)
	}

	app := &domain.Application{
		Name:        strings.TrimSpace(input.Name),
		Email:       strings.TrimSpace(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		CoverLetter: input.CoverLetter,
		Applicant:   domain.RoleRef{User: caller.ID, Role: domain.RoleJobSeeker},
		Employer:    domain.RoleRef{User: job.PostedBy, Role: domain.RoleEmployer},
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventApplicationSubmitted,
		Actor: events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: app.ID,
			JobID:         job.ID,
			EmployerID:    job.PostedBy,
		},
	})
	return app, nil
}

// ListForEmployer returns applications received by the caller.
func (s *ApplicationService) ListForEmployer(ctx context.Context, caller *domain.User) ([]domain.Application, error) {
	if caller.Role == domain.RoleJobSeeker {
		return nil, apperrors.NewForbidden("job seekers have no access to this resource")
	}
	return s.applications.ListByEmployer(ctx, caller.ID)
}

// ListForApplicant returns applications submitted by the caller.
func (s *ApplicationService) ListForApplicant(ctx context.Context, caller *domain.User) ([]domain.Application, error) {
	if caller.Role == domain.RoleEmployer {
		return nil, apperrors.NewForbidden("employers have no access to this resource")
	}
	return s.applications.ListByApplicant(ctx, caller.ID)
}

// Withdraw deletes an application by id. Any job seeker may delete any
// application; the applicant is not compared to the caller. That permissive
// behavior is deliberate and matches the system being replaced.
func (s *ApplicationService) Withdraw(ctx context.Context, caller *domain.User, id string) error {
	if caller.Role == domain.RoleEmployer {
		return apperrors.NewForbidden("employers have no access to this resource")
	}

	if _, err := s.applications.GetByID(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("application", map[string]any{"id": id})
		}
		return err
	}
	if err := s.applications.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("application", map[string]any{"id": id})
		}
		return err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventApplicationWithdrawn,
		Actor:   events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.ApplicationWithdrawnPayload{ApplicationID: id},
	})
	return nil
}
