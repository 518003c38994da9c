package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// UsersHandler exposes registration, login, logout and identity endpoints.
type UsersHandler struct {
	auth      *service.AuthService
	cookieTTL time.Duration
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, cookieTTL time.Duration) *UsersHandler {
	return &UsersHandler{auth: authService, cookieTTL: cookieTTL}
}

// Register handles POST /user/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, h.cookieTTL)
	return respond(c, http.StatusCreated, dto.AuthResponse{
		User:      dto.NewUserView(user),
		Token:     token,
		ExpiresAt: exp,
	}, "user registered")
}

// Login handles POST /user/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, h.cookieTTL)
	return respond(c, http.StatusOK, dto.AuthResponse{
		User:      dto.NewUserView(user),
		Token:     token,
		ExpiresAt: exp,
	}, "logged in")
}

// Logout handles POST /user/logout.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context(), c.Cookies(auth.SessionCookieName)); err != nil {
		return err
	}
	auth.ClearSessionCookie(c)
	return respond(c, http.StatusOK, nil, "logged out")
}

// GetUser handles GET /user/getuser.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	return respond(c, http.StatusOK, dto.NewUserView(user), "")
}
