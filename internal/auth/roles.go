package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/domain"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// RequireEmployer forbids job seekers from reaching the handler.
func RequireEmployer() fiber.Handler {
	return requireNot(domain.RoleJobSeeker, "job seekers have no access to this resource")
}

// RequireJobSeeker forbids employers from reaching the handler.
func RequireJobSeeker() fiber.Handler {
	return requireNot(domain.RoleEmployer, "employers have no access to this resource")
}

func requireNot(blocked domain.Role, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return apperrors.NewUnauthorized("not authenticated")
		}
		if user.Role == blocked {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}
