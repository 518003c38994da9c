package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// ApplicationsHandler exposes submission endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applicationService}
}

// Submit handles POST /application/sendapplication.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.ApplicationSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	app, err := h.applications.Submit(c.Context(), caller, service.ApplicationSubmitInput{
		JobID:       req.JobID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, dto.NewApplicationView(app), "application submitted")
}

// ListForEmployer handles GET /application/employer/getall.
func (h *ApplicationsHandler) ListForEmployer(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	apps, err := h.applications.ListForEmployer(c.Context(), caller)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewApplicationViews(apps), "")
}

// ListForApplicant handles GET /application/jobseeker/getall.
func (h *ApplicationsHandler) ListForApplicant(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	apps, err := h.applications.ListForApplicant(c.Context(), caller)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewApplicationViews(apps), "")
}

// Withdraw handles DELETE /application/jobseeker/delete/:id.
func (h *ApplicationsHandler) Withdraw(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	if err := h.applications.Withdraw(c.Context(), caller, c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "application deleted")
}
