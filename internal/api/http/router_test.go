package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/job-board/internal/api/http"
	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/observability"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// envelope mirrors the fixed response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.NewConflict("email already registered", nil)
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memJobRepo struct {
	mu   sync.Mutex
	jobs []*domain.Job
	seq  int
}

func (r *memJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	job.ID = fmt.Sprintf("job-%d", r.seq)
	stored := *job
	r.jobs = append(r.jobs, &stored)
	return nil
}

func (r *memJobRepo) Update(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.jobs {
		if existing.ID == job.ID {
			stored := *job
			r.jobs[i] = &stored
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memJobRepo) GetByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		if job.ID == id {
			copied := *job
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memJobRepo) ListPublic(_ context.Context) ([]domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Job
	for _, job := range r.jobs {
		if !job.Expired {
			result = append(result, *job)
		}
	}
	return result, nil
}

func (r *memJobRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Job
	for _, job := range r.jobs {
		if job.PostedBy == ownerID {
			result = append(result, *job)
		}
	}
	return result, nil
}

type memApplicationRepo struct {
	mu   sync.Mutex
	apps []*domain.Application
	seq  int
}

func (r *memApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	app.ID = fmt.Sprintf("app-%d", r.seq)
	stored := *app
	r.apps = append(r.apps, &stored)
	return nil
}

func (r *memApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.ID == id {
			copied := *app
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memApplicationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, app := range r.apps {
		if app.ID == id {
			r.apps = append(r.apps[:i], r.apps[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memApplicationRepo) ListByApplicant(_ context.Context, userID string) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Application
	for _, app := range r.apps {
		if app.Applicant.User == userID {
			result = append(result, *app)
		}
	}
	return result, nil
}

func (r *memApplicationRepo) ListByEmployer(_ context.Context, userID string) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Application
	for _, app := range r.apps {
		if app.Employer.User == userID {
			result = append(result, *app)
		}
	}
	return result, nil
}

func newTestApp() (*fiber.App, *observability.Metrics) {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret",
			TokenExpireDays: 7,
			BcryptCost:      4,
		},
		CORS: config.CORSConfig{AllowedOrigin: "http://localhost:3000"},
	}

	userRepo := &memUserRepo{users: map[string]*domain.User{}}
	jobRepo := &memJobRepo{}
	applicationRepo := &memApplicationRepo{}

	logger := zap.NewNop()
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo: userRepo,
		Logger:   logger,
	})
	jobService := service.NewJobService(service.JobDependencies{JobRepo: jobRepo})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		JobRepo:         jobRepo,
	})

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0, cfg.CORS)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:       handlers.NewHealthHandler("job-board-service", "test", nil, nil),
		Users:        handlers.NewUsersHandler(authService, 24*time.Hour),
		Jobs:         handlers.NewJobsHandler(jobService),
		Applications: handlers.NewApplicationsHandler(applicationService),
		Session:      auth.NewSessionMiddleware(authService.TokenManager(), userRepo),
	})
	return app, metrics
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookie string) (*nethttp.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := nethttp.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&nethttp.Cookie{Name: auth.SessionCookieName, Value: cookie})
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	return resp, env
}

func sessionCookie(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			return c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func register(t *testing.T, app *fiber.App, name, email, role string) string {
	t.Helper()
	resp, env := doJSON(t, app, "POST", "/api/v1/user/register", map[string]string{
		"name":        name,
		"email":       email,
		"phonenumber": "12345",
		"password":    "pw1",
		"role":        role,
	}, "")
	if resp.StatusCode != nethttp.StatusCreated {
		t.Fatalf("register %s: status %d (%v)", email, resp.StatusCode, env.Error)
	}
	return sessionCookie(t, resp)
}

func TestApplicationWorkflow(t *testing.T) {
	app, _ := newTestApp()

	seekerCookie := register(t, app, "Ada", "a@x.com", "JobSeeker")
	employerCookie := register(t, app, "Acme HR", "b@x.com", "Employer")

	// Employer posts a job.
	resp, env := doJSON(t, app, "POST", "/api/v1/jobs/postjob", map[string]string{
		"title":       "Dev",
		"description": "Build things",
		"category":    "Engineering",
		"type":        "Remote",
		"companyname": "Acme",
		"country":     "NL",
		"city":        "Amsterdam",
		"salary":      "10",
	}, employerCookie)
	if resp.StatusCode != nethttp.StatusCreated {
		t.Fatalf("postjob: status %d (%v)", resp.StatusCode, env.Error)
	}
	var postedJob struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &postedJob); err != nil {
		t.Fatalf("decode job: %v", err)
	}

	// The posting is publicly listed without a session.
	resp, env = doJSON(t, app, "GET", "/api/v1/jobs/getalljobs", nil, "")
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("getalljobs: status %d", resp.StatusCode)
	}
	var listed []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != postedJob.ID {
		t.Fatalf("expected the posted job in the public listing, got %d entries", len(listed))
	}

	// Seeker applies with form values distinct from the account name.
	resp, env = doJSON(t, app, "POST", "/api/v1/application/sendapplication", map[string]string{
		"jobId":       postedJob.ID,
		"name":        "Ada Lovelace",
		"email":       "ada@apply.com",
		"phone":       "55555",
		"coverLetter": "hello world",
	}, seekerCookie)
	if resp.StatusCode != nethttp.StatusCreated {
		t.Fatalf("sendapplication: status %d (%v)", resp.StatusCode, env.Error)
	}
	var submitted struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &submitted); err != nil {
		t.Fatalf("decode application: %v", err)
	}

	// Employer inbox has exactly one entry carrying the submitted values.
	resp, env = doJSON(t, app, "GET", "/api/v1/application/employer/getall", nil, employerCookie)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("employer getall: status %d (%v)", resp.StatusCode, env.Error)
	}
	var inbox []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.Data, &inbox); err != nil {
		t.Fatalf("decode inbox: %v", err)
	}
	if len(inbox) != 1 || inbox[0].Name != "Ada Lovelace" || inbox[0].Email != "ada@apply.com" {
		t.Fatalf("unexpected employer inbox: %+v", inbox)
	}

	// Seeker withdraws; list is empty afterwards, second delete is a 404.
	resp, env = doJSON(t, app, "DELETE", "/api/v1/application/jobseeker/delete/"+submitted.ID, nil, seekerCookie)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("delete: status %d (%v)", resp.StatusCode, env.Error)
	}
	resp, env = doJSON(t, app, "GET", "/api/v1/application/jobseeker/getall", nil, seekerCookie)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("jobseeker getall: status %d", resp.StatusCode)
	}
	var remaining []json.RawMessage
	if err := json.Unmarshal(env.Data, &remaining); err == nil && len(remaining) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(remaining))
	}
	resp, _ = doJSON(t, app, "DELETE", "/api/v1/application/jobseeker/delete/"+submitted.ID, nil, seekerCookie)
	if resp.StatusCode != nethttp.StatusNotFound {
		t.Fatalf("second delete: status %d, want 404", resp.StatusCode)
	}
}

func TestUnauthenticatedAccessFailsClosed(t *testing.T) {
	app, _ := newTestApp()

	for _, path := range []string{
		"/api/v1/user/getuser",
		"/api/v1/jobs/getmyjobs",
		"/api/v1/application/employer/getall",
	} {
		resp, env := doJSON(t, app, "GET", path, nil, "")
		if resp.StatusCode != nethttp.StatusUnauthorized {
			t.Errorf("GET %s: status %d, want 401", path, resp.StatusCode)
		}
		if env.Success {
			t.Errorf("GET %s: success=true on an auth failure", path)
		}
	}
}

func TestRoleGatesAtTheRouter(t *testing.T) {
	app, _ := newTestApp()

	seekerCookie := register(t, app, "Ada", "a@x.com", "JobSeeker")
	employerCookie := register(t, app, "Acme HR", "b@x.com", "Employer")

	resp, _ := doJSON(t, app, "POST", "/api/v1/jobs/postjob", map[string]string{"title": "x"}, seekerCookie)
	if resp.StatusCode != nethttp.StatusForbidden {
		t.Errorf("seeker postjob: status %d, want 403", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "POST", "/api/v1/application/sendapplication", map[string]string{"jobId": "x"}, employerCookie)
	if resp.StatusCode != nethttp.StatusForbidden {
		t.Errorf("employer sendapplication: status %d, want 403", resp.StatusCode)
	}
}

func TestLoginSetsCookieAndLogoutClearsIt(t *testing.T) {
	app, _ := newTestApp()
	register(t, app, "Ada", "a@x.com", "JobSeeker")

	resp, env := doJSON(t, app, "POST", "/api/v1/user/login", map[string]string{
		"email":    "a@x.com",
		"password": "pw1",
		"role":     "JobSeeker",
	}, "")
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("login: status %d (%v)", resp.StatusCode, env.Error)
	}
	cookie := sessionCookie(t, resp)

	resp, env = doJSON(t, app, "GET", "/api/v1/user/getuser", nil, cookie)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("getuser: status %d (%v)", resp.StatusCode, env.Error)
	}
	var me struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if me.Email != "a@x.com" {
		t.Errorf("expected a@x.com, got %q", me.Email)
	}
	if bytes.Contains(env.Data, []byte("password")) {
		t.Error("identity payload leaks a password field")
	}

	resp, _ = doJSON(t, app, "POST", "/api/v1/user/logout", nil, cookie)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("logout: status %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookieName {
			if c.Value != "" {
				t.Error("logout did not clear the cookie value")
			}
			if c.Expires.After(time.Now()) {
				t.Error("logout cookie not expired")
			}
		}
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	app, _ := newTestApp()
	register(t, app, "Ada", "a@x.com", "JobSeeker")

	wrongPassword := map[string]string{"email": "a@x.com", "password": "nope", "role": "JobSeeker"}
	unknownEmail := map[string]string{"email": "b@x.com", "password": "pw1", "role": "JobSeeker"}

	resp1, env1 := doJSON(t, app, "POST", "/api/v1/user/login", wrongPassword, "")
	resp2, env2 := doJSON(t, app, "POST", "/api/v1/user/login", unknownEmail, "")

	if resp1.StatusCode != nethttp.StatusUnauthorized || resp2.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("expected 401s, got %d and %d", resp1.StatusCode, resp2.StatusCode)
	}
	if env1.Error == nil || env2.Error == nil || env1.Error.Message != env2.Error.Message {
		t.Error("login failures distinguish unknown email from wrong password")
	}
}

func TestInvalidSessionCookieRejected(t *testing.T) {
	app, _ := newTestApp()

	resp, _ := doJSON(t, app, "GET", "/api/v1/user/getuser", nil, "not-a-token")
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Errorf("expected 401 for a bogus cookie, got %d", resp.StatusCode)
	}
}

func TestSessionForMissingAccountRejected(t *testing.T) {
	app, _ := newTestApp()

	// Validly signed token for an id the store does not hold.
	tokens := auth.NewTokenManager("test-secret", 7)
	token, _, err := tokens.Generate("user-999")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	resp, env := doJSON(t, app, "GET", "/api/v1/user/getuser", nil, token)
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("expected 401 for a vanished account, got %d", resp.StatusCode)
	}
	if env.Success || env.Error == nil {
		t.Error("expected the error envelope for a vanished account")
	}
}

func TestMalformedJobIDTreatedAsMissing(t *testing.T) {
	app, _ := newTestApp()
	cookie := register(t, app, "Ada", "a@x.com", "JobSeeker")

	resp, env := doJSON(t, app, "GET", "/api/v1/jobs/getajob/garbage", nil, cookie)
	if resp.StatusCode != nethttp.StatusNotFound {
		t.Fatalf("expected 404 for a malformed job id, got %d", resp.StatusCode)
	}
	if env.Success || env.Error == nil {
		t.Error("expected the error envelope for a malformed job id")
	}
}

func TestErrorStatusReachesRequestMetrics(t *testing.T) {
	app, metrics := newTestApp()

	resp, _ := doJSON(t, app, "GET", "/api/v1/user/getuser", nil, "")
	if resp.StatusCode != nethttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	if got := metrics.RequestCount("/api/v1/user/getuser", "GET", nethttp.StatusUnauthorized); got != 1 {
		t.Errorf("expected one recorded 401 request, got %d", got)
	}
	if got := metrics.RequestCount("/api/v1/user/getuser", "GET", nethttp.StatusOK); got != 0 {
		t.Errorf("expected no recorded 200 request, got %d", got)
	}
}
