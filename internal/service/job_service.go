package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-board/internal/cache"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// JobService coordinates posting workflows.
type JobService struct {
	jobs       repository.JobRepository
	listings   *cache.JobListingCache
	dispatcher events.Dispatcher
}

// JobDependencies bundles requirements for the job service.
type JobDependencies struct {
	JobRepo      repository.JobRepository
	ListingCache *cache.JobListingCache
	Dispatcher   events.Dispatcher
}

// JobCreateInput describes the posting payload.
type JobCreateInput struct {
	Title       string
	Description string
	Category    string
	Type        domain.JobType
	CompanyName string
	Country     string
	City        string
	Salary      string
}

// JobUpdateInput carries a partial update; nil fields are left untouched.
type JobUpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	Type        *domain.JobType
	CompanyName *string
	Country     *string
	City        *string
	Salary      *string
	Expired     *bool
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{
		jobs:       deps.JobRepo,
		listings:   deps.ListingCache,
		dispatcher: deps.Dispatcher,
	}
}

// Post creates a posting owned by the caller. Job seekers cannot post.
func (s *JobService) Post(ctx context.Context, caller *domain.User, input JobCreateInput) (*domain.Job, error) {
	if caller.Role == domain.RoleJobSeeker {
		return nil, apperrors.NewForbidden("job seekers cannot post a job")
	}
	if input.Title == "" || input.Description == "" || input.Category == "" || input.Type == "" ||
		input.CompanyName == "" || input.Country == "" || input.City == "" {
		return nil, apperrors.NewValidationError("please provide full job details", nil)
	}
	if input.Salary == "" {
		return nil, apperrors.NewValidationError("please provide salary", nil)
	}
	if !input.Type.Valid() {
		return nil, apperrors.NewValidationError("job type must be On Site, Remote or Internship", nil)
	}

	job := &domain.Job{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Type:        input.Type,
		CompanyName: input.CompanyName,
		Country:     input.Country,
		City:        input.City,
		Salary:      input.Salary,
		Expired:     false,
		PostedBy:    caller.ID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.listings.Invalidate(ctx)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventJobPosted,
		Actor: events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.JobPostedPayload{
			JobID:       job.ID,
			Title:       job.Title,
			Type:        job.Type,
			CompanyName: job.CompanyName,
		},
	})
	return job, nil
}

// ListPublic returns all non-expired postings, cache-first. Two calls with no
// intervening writes return the same set.
func (s *JobService) ListPublic(ctx context.Context) ([]domain.Job, error) {
	if jobs, ok := s.listings.GetPublicListing(ctx); ok {
		return jobs, nil
	}
	jobs, err := s.jobs.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	s.listings.SetPublicListing(ctx, jobs)
	return jobs, nil
}

// ListMine returns every posting owned by the caller, expired ones included.
func (s *JobService) ListMine(ctx context.Context, caller *domain.User) ([]domain.Job, error) {
	if caller.Role == domain.RoleJobSeeker {
		return nil, apperrors.NewForbidden("job seekers have no access to this resource")
	}
	return s.jobs.ListByOwner(ctx, caller.ID)
}

// Get fetches a single posting by id.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": id})
		}
		return nil, err
	}
	return job, nil
}

// Update merges the supplied fields into an existing posting. Any employer
// may update any posting; the poster is not compared to the caller. That
// permissive behavior is deliberate and matches the system being replaced.
func (s *JobService) Update(ctx context.Context, caller *domain.User, id string, input JobUpdateInput) (*domain.Job, error) {
	if caller.Role == domain.RoleJobSeeker {
		return nil, apperrors.NewForbidden("job seekers have no access to this resource")
	}

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": id})
		}
		return nil, err
	}

	applyJobUpdate(job, input)
	if !job.Type.Valid() {
		return nil, apperrors.NewValidationError("job type must be On Site, Remote or Internship", nil)
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job", map[string]any{"id": id})
		}
		return nil, err
	}

	s.listings.Invalidate(ctx)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventJobUpdated,
		Actor: events.Actor{UserID: caller.ID, Role: caller.Role},
		Payload: events.JobUpdatedPayload{
			JobID:   job.ID,
			Expired: job.Expired,
		},
	})
	return job, nil
}

func applyJobUpdate(job *domain.Job, input JobUpdateInput) {
	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Category != nil {
		job.Category = *input.Category
	}
	if input.Type != nil {
		job.Type = *input.Type
	}
	if input.CompanyName != nil {
		job.CompanyName = *input.CompanyName
	}
	if input.Country != nil {
		job.Country = *input.Country
	}
	if input.City != nil {
		job.City = *input.City
	}
	if input.Salary != nil {
		job.Salary = *input.Salary
	}
	if input.Expired != nil {
		job.Expired = *input.Expired
	}
}
