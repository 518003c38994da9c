package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
	Role        domain.Role
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpireDays),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account. The password is stored only as a bcrypt
// hash. The duplicate-email pre-read gives the friendly error in the common
// case; the unique index on users.email is what actually closes the race.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	if input.Name == "" || input.Email == "" || input.PhoneNumber == "" || input.Password == "" || input.Role == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("all fields are required", nil)
	}
	if !input.Role.Valid() {
		return nil, "", time.Time{}, apperrors.NewValidationError("role must be JobSeeker or Employer", nil)
	}

	email := strings.TrimSpace(input.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Generate(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserRegistered,
		Actor: events.Actor{UserID: user.ID, Role: user.Role},
		Payload: events.UserRegisteredPayload{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		},
	})
	return user, token, exp, nil
}

// Login authenticates an account. Unknown email, wrong password, and role
// mismatch all surface as the same generic error; the precise reason stays in
// the server log only.
func (s *AuthService) Login(ctx context.Context, email, password string, role domain.Role) (*domain.User, string, time.Time, error) {
	if email == "" || password == "" || role == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email, password and role required", nil)
	}

	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if err == pgx.ErrNoRows {
			s.logger.Info("login rejected", zap.String("email", email), zap.String("reason", "unknown email"))
			return nil, "", time.Time{}, errInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login rejected", zap.String("email", email), zap.String("reason", "wrong password"))
		return nil, "", time.Time{}, errInvalidCredentials()
	}
	if user.Role != role {
		s.logger.Info("login rejected", zap.String("email", email), zap.String("reason", "role mismatch"))
		return nil, "", time.Time{}, errInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.Generate(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout is a no-op for the stateless token approach; the HTTP layer clears
// the cookie.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func errInvalidCredentials() error {
	return apperrors.NewUnauthorized("invalid email or password")
}
