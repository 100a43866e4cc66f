package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workforce-service/internal/api/http/handlers"
	"github.com/spec-kit/workforce-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Accounts       *handlers.AccountsHandler
	Departments    *handlers.DepartmentsHandler
	Projects       *handlers.ProjectsHandler
	Tasks          *handlers.TasksHandler
	Kpis           *handlers.KpisHandler
	Leave          *handlers.LeaveHandler
	Reviews        *handlers.ReviewsHandler
	Audit          *handlers.AuditHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Everything below /api requires a
// resolved principal; per-operation permissions are enforced by the
// service layer, not by per-route role lists.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/stats", cfg.Health.Stats)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Post("/auth/logout", cfg.Auth.Logout)
	api.Post("/auth/password/change", cfg.Auth.ChangePassword)

	accounts := api.Group("/accounts")
	accounts.Post("/", cfg.Accounts.Create)
	accounts.Get("/", cfg.Accounts.List)
	accounts.Get("/me", cfg.Accounts.Me)
	accounts.Patch("/me", cfg.Accounts.UpdateMe)
	accounts.Get("/team", cfg.Accounts.ListTeam)
	accounts.Get("/role/:role", cfg.Accounts.ListByRole)
	accounts.Get("/:id", cfg.Accounts.Get)
	accounts.Patch("/:id", cfg.Accounts.Update)
	accounts.Post("/:id/activate", cfg.Accounts.Activate)
	accounts.Post("/:id/deactivate", cfg.Accounts.Deactivate)
	accounts.Post("/:id/password/reset", cfg.Accounts.ResetPassword)
	accounts.Delete("/:id", cfg.Accounts.Delete)

	departments := api.Group("/departments")
	departments.Post("/", cfg.Departments.Create)
	departments.Get("/", cfg.Departments.List)
	departments.Get("/:id", cfg.Departments.Get)
	departments.Patch("/:id", cfg.Departments.Update)
	departments.Delete("/:id", cfg.Departments.Delete)

	projects := api.Group("/projects")
	projects.Post("/", cfg.Projects.Create)
	projects.Get("/", cfg.Projects.List)
	projects.Get("/mine", cfg.Projects.ListMine)
	projects.Get("/assigned", cfg.Projects.ListAssigned)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Get("/:id/tasks", cfg.Tasks.ListByProject)
	projects.Patch("/:id", cfg.Projects.Update)
	projects.Delete("/:id", cfg.Projects.Delete)

	tasks := api.Group("/tasks")
	tasks.Post("/", cfg.Tasks.Create)
	tasks.Get("/", cfg.Tasks.List)
	tasks.Get("/mine", cfg.Tasks.ListMine)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Patch("/:id", cfg.Tasks.Update)
	tasks.Delete("/:id", cfg.Tasks.Delete)

	kpis := api.Group("/kpis")
	kpis.Post("/", cfg.Kpis.Create)
	kpis.Get("/", cfg.Kpis.List)
	kpis.Get("/mine", cfg.Kpis.ListMine)
	kpis.Get("/employee/:id", cfg.Kpis.ListByEmployee)
	kpis.Get("/:id", cfg.Kpis.Get)
	kpis.Patch("/:id", cfg.Kpis.Update)
	kpis.Delete("/:id", cfg.Kpis.Delete)

	leave := api.Group("/leave-requests")
	leave.Post("/", cfg.Leave.Submit)
	leave.Get("/", cfg.Leave.List)
	leave.Get("/mine", cfg.Leave.ListMine)
	leave.Get("/team", cfg.Leave.ListTeam)
	leave.Get("/:id", cfg.Leave.Get)
	leave.Post("/:id/review", cfg.Leave.Review)

	reviews := api.Group("/reviews")
	reviews.Post("/", cfg.Reviews.Create)
	reviews.Get("/", cfg.Reviews.List)
	reviews.Get("/mine", cfg.Reviews.ListMine)
	reviews.Get("/employee/:id", cfg.Reviews.ListByEmployee)
	reviews.Get("/:id", cfg.Reviews.Get)
	reviews.Patch("/:id", cfg.Reviews.Update)
	reviews.Post("/:id/self-appraisal", cfg.Reviews.SubmitSelfAppraisal)
	reviews.Delete("/:id", cfg.Reviews.Delete)

	audit := api.Group("/audit-logs")
	audit.Get("/", cfg.Audit.List)
	audit.Get("/account/:id", cfg.Audit.ListByAccount)
}
