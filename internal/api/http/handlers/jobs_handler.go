package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// JobsHandler exposes posting endpoints.
type JobsHandler struct {
	jobs *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{jobs: jobService}
}

// Post handles POST /jobs/postjob.
func (h *JobsHandler) Post(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.JobCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	job, err := h.jobs.Post(c.Context(), caller, service.JobCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        domain.JobType(req.Type),
		CompanyName: req.CompanyName,
		Country:     req.Country,
		City:        req.City,
		Salary:      req.Salary,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewJobView(job), "job posted successfully")
}

// ListPublic handles GET /jobs/getalljobs.
func (h *JobsHandler) ListPublic(c *fiber.Ctx) error {
	jobs, err := h.jobs.ListPublic(c.Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewJobViews(jobs), "")
}

// ListMine handles GET /jobs/getmyjobs.
func (h *JobsHandler) ListMine(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	jobs, err := h.jobs.ListMine(c.Context(), caller)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewJobViews(jobs), "")
}

// Get handles GET /jobs/getajob/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewJobView(job), "")
}

// Update handles PUT /jobs/update/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.JobUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.JobUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CompanyName: req.CompanyName,
		Country:     req.Country,
		City:        req.City,
		Salary:      req.Salary,
		Expired:     req.Expired,
	}
	if req.Type != nil {
		jobType := domain.JobType(*req.Type)
		input.Type = &jobType
	}

	job, err := h.jobs.Update(c.Context(), caller, c.Params("id"), input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewJobView(job), "job updated successfully")
}
