package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/http/handlers"
	"github.com/spec-kit/job-board/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Users        *handlers.UsersHandler
	Jobs         *handlers.JobsHandler
	Applications *handlers.ApplicationsHandler
	Session      *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	users := api.Group("/user")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Post("/logout", cfg.Session.Handle, cfg.Users.Logout)
	users.Get("/getuser", cfg.Session.Handle, cfg.Users.GetUser)

	jobs := api.Group("/jobs")
	jobs.Get("/getalljobs", cfg.Jobs.ListPublic)
	jobs.Post("/postjob", cfg.Session.Handle, auth.RequireEmployer(), cfg.Jobs.Post)
	jobs.Get("/getmyjobs", cfg.Session.Handle, auth.RequireEmployer(), cfg.Jobs.ListMine)
	jobs.Put("/update/:id", cfg.Session.Handle, auth.RequireEmployer(), cfg.Jobs.Update)
	jobs.Get("/getajob/:id", cfg.Session.Handle, cfg.Jobs.Get)

	applications := api.Group("/application")
	applications.Post("/sendapplication", cfg.Session.Handle, auth.RequireJobSeeker(), cfg.Applications.Submit)
	applications.Get("/employer/getall", cfg.Session.Handle, auth.RequireEmployer(), cfg.Applications.ListForEmployer)
	applications.Get("/jobseeker/getall", cfg.Session.Handle, auth.RequireJobSeeker(), cfg.Applications.ListForApplicant)
	applications.Delete("/jobseeker/delete/:id", cfg.Session.Handle, auth.RequireJobSeeker(), cfg.Applications.Withdraw)
}
