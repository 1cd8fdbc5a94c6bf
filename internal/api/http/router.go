package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard-service/internal/access"
	"github.com/spec-kit/jobboard-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Profile  *handlers.ProfileHandler
	Employer *handlers.EmployerHandler
	Admin    *handlers.AdminHandler
	Pages    *handlers.PagesHandler
	Gate     *access.Gate
}

// RegisterRoutes wires HTTP routes. The edge gate runs ahead of everything;
// it lets /auth, /api, /health and static-asset paths through by
// classification rather than by registration order.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/api/health/live", cfg.Health.Live)
	app.Get("/api/health/ready", cfg.Health.Ready)

	app.Use(cfg.Gate.Handle)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	app.Get("/me", cfg.Profile.Me)
	app.Post("/onboarding/role", cfg.Profile.SelectRole)
	app.Put("/onboarding", cfg.Profile.SubmitOnboarding)

	app.Post("/employer/company", cfg.Employer.CreateCompany)
	app.Get("/employer/company", cfg.Employer.GetCompany)

	adminGroup := app.Group("/admin")
	adminGroup.Get("/users", cfg.Admin.ListUsers)
	adminGroup.Post("/users/:id/block", cfg.Admin.BlockUser)
	adminGroup.Post("/users/:id/unblock", cfg.Admin.UnblockUser)
	adminGroup.Get("/companies", cfg.Admin.ListCompanies)
	adminGroup.Post("/companies/:id/review", cfg.Admin.ReviewCompany)
	adminGroup.Post("/companies/:id/reopen", cfg.Admin.ReopenCompany)
	adminGroup.Get("/audit", cfg.Admin.AuditTrail)

	// Page-equivalent paths: anything else that survived the gate.
	app.Get("/*", cfg.Pages.Render)
}
